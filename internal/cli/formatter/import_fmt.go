package formatter

import (
	"fmt"
	"strings"

	"github.com/ThalusA/PLDGenerator/internal/service"
)

// FormatImportResult summarizes an import run.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	if len(r.Labels) > 0 {
		b.WriteString(FormatLabels(r.Labels))
		b.WriteString("\n")
	}

	lines := []string{
		fmt.Sprintf("%s %d %s", StyleGreen.Render("+"), r.Created, Plural(r.Created, "issue created", "issues created")),
		fmt.Sprintf("%s %d %s", StyleYellow.Render("~"), r.Updated, Plural(r.Updated, "issue updated", "issues updated")),
		fmt.Sprintf("%s %d %s", StyleDim.Render("="), r.Unchanged, Plural(r.Unchanged, "issue unchanged", "issues unchanged")),
	}
	content := strings.Join(lines, "\n")
	if r.Root != nil {
		content = fmt.Sprintf("%s %s\n%s\n\n%s", Bold(r.Root.Title), StyleDim.Render(fmt.Sprintf("#%d", r.Root.Number)), Dim(r.Root.URL), content)
	}
	b.WriteString(RenderBox("Import", content))
	b.WriteString("\n")
	return b.String()
}

// FormatLabels lists the category labels and whether each was just created.
func FormatLabels(labels []service.LabelStatus) string {
	rows := make([][]string, 0, len(labels))
	for _, l := range labels {
		state := Dim("exists")
		if l.Created {
			state = StyleGreen.Render("created")
		}
		rows = append(rows, []string{l.Label.Name, Dim("#" + l.Label.Color), state})
	}
	return RenderTable([]string{"Label", "Color", "State"}, rows)
}

// FormatWarnings renders one line per warning, or nothing when there are none.
func FormatWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("! ") + w + "\n")
	}
	return b.String()
}

// FormatValidation renders validation problems, one per line.
func FormatValidation(problems []error) string {
	if len(problems) == 0 {
		return StyleGreen.Render("✔ ") + "document is valid\n"
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %d %s", len(problems), Plural(len(problems), "problem", "problems"))) + "\n")
	for _, p := range problems {
		b.WriteString("  " + p.Error() + "\n")
	}
	return b.String()
}
