package codec

import (
	"strconv"
	"strings"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

const listSeparator = ", "

// RenderPLD renders the root issue body. The updated date and model version
// rows are derived from the latest version.
func (c *Codec) RenderPLD(p *domain.PLD, children *Checklist) string {
	var updated, model string
	if v := p.LatestVersion(); v != nil {
		updated, model = v.Date, v.Version
	}

	var rows strings.Builder
	for _, v := range p.Versions {
		rows.WriteString(c.versionRow.render(map[string]string{
			"date":     escape(v.Date),
			"version":  escape(v.Version),
			"authors":  escapeJoin(v.Authors),
			"sections": escape(v.Sections),
			"comment":  escape(v.Comment),
		}))
	}

	return c.pld.render(map[string]string{
		"title":         escape(p.Title),
		"subtitle":      escape(deref(p.Subtitle)),
		"description":   escape(deref(p.Description)),
		"locale":        escape(p.Locale),
		"authors":       escapeJoin(p.Authors),
		"updated_date":  escape(updated),
		"model_version": escape(model),
		"versions":      rows.String(),
	}) + children.render()
}

// RenderDeliverable renders a deliverable body.
func (c *Codec) RenderDeliverable(d *domain.Deliverable, children *Checklist) string {
	return c.renderContainer(d.Description, children)
}

// RenderSubset renders a subset body.
func (c *Codec) RenderSubset(s *domain.Subset, children *Checklist) string {
	return c.renderContainer(s.Description, children)
}

func (c *Codec) renderContainer(description *string, children *Checklist) string {
	return c.container.render(map[string]string{
		"description": escape(deref(description)),
	}) + children.render()
}

// RenderUserStory renders a user story body.
func (c *Codec) RenderUserStory(u *domain.UserStory) string {
	return c.userStory.render(map[string]string{
		"name":                escape(u.Name),
		"user":                escape(u.User),
		"action":              escape(u.Action),
		"description":         escape(u.Description),
		"definitions_of_done": listItems(u.DefinitionsOfDone),
		"assignments":         escapeJoin(u.Assignments),
		"estimated_duration":  formatDays(u.EstimatedDuration),
		"estimated_hours":     strconv.Itoa(u.EstimatedHours()),
		"status":              escape(c.dict.StatusLabel(u.Status)),
		"due_date":            escape(u.DueDate),
		"end_date":            escape(u.EndDate),
		"comments":            c.renderComments(u.Comments),
	})
}

func (c *Codec) renderComments(cm domain.Comments) string {
	switch {
	case cm.IsZero():
		return ""
	case cm.IsList:
		return c.commentsList.render(map[string]string{"comments_items": listItems(cm.Items)})
	default:
		return c.commentsInline.render(map[string]string{"comments_text": escape(cm.Text)})
	}
}

func listItems(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(listItemIndent + "<li>" + escape(item) + "</li>")
	}
	return b.String()
}

func escapeJoin(values []string) string {
	return escape(strings.Join(values, listSeparator))
}

// formatDays prints the shortest decimal that parses back to d.
func formatDays(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
