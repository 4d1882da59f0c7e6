package formatter

import (
	"fmt"
	"strings"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
	"github.com/ThalusA/PLDGenerator/internal/report"
)

// FormatStats renders the man-day totals, the per-author distribution and
// the advancement report, labelled in the document's locale.
func FormatStats(dict *locale.Dictionary, p *domain.PLD) string {
	stats := report.Compute(p)

	var b strings.Builder
	b.WriteString(Header(dict.Stats) + "\n")
	b.WriteString(fmt.Sprintf("%s: %s %s (%d %s)\n\n",
		Bold(dict.TotalManDays), report.FormatDays(stats.TotalManDays), dict.ManDays,
		stats.Stories, strings.ToLower(dict.UserStories)))

	if len(stats.Distribution) > 0 {
		b.WriteString(Header(dict.ManDaysDistribution) + "\n")
		rows := make([][]string, 0, len(stats.Distribution))
		for _, d := range stats.Distribution {
			share := 0.0
			if stats.TotalManDays > 0 {
				share = d.ManDays / stats.TotalManDays
			}
			rows = append(rows, []string{d.Author, report.FormatDays(d.ManDays), RenderProgress(share, 20)})
		}
		b.WriteString(RenderTable([]string{dict.Authors, dict.ManDays, ""}, rows))
		b.WriteString("\n")
	}

	advancement := report.Advancement(p)
	if len(advancement) > 0 {
		b.WriteString(Header(dict.AdvancementReport) + "\n")
		for _, a := range advancement {
			b.WriteString(Bold(a.Author) + "\n")
			for _, s := range a.Stories {
				b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleDim.Render(s.Coordinate.String()), s.Name, StatusPill(dict, s.Status)))
			}
		}
	}
	return b.String()
}
