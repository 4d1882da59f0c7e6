package locale

import (
	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// Dictionary is the closed set of display strings used to render and parse
// issue bodies. Every field is required; Parse rejects a dictionary with any
// field missing or empty.
type Dictionary struct {
	Code string `json:"-"`

	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	DocumentDescription string `json:"document_description"`
	Description         string `json:"description"`
	Locale              string `json:"locale"`
	DueDate             string `json:"due_date"`
	EndDate             string `json:"end_date"`
	Authors             string `json:"authors"`
	UpdatedDate         string `json:"updated_date"`
	ModelVersion        string `json:"model_version"`
	Stats               string `json:"stats"`
	ManDaysDistribution string `json:"man_days_distribution"`
	TotalManDays        string `json:"total_man_days"`
	RevisionTable       string `json:"revision_table"`
	Date                string `json:"date"`
	Version             string `json:"version"`
	Sections            string `json:"sections"`
	Comment             string `json:"comment"`
	TableOfContent      string `json:"table_of_content"`
	Organigram          string `json:"organigram"`
	DeliverableMap      string `json:"deliverable_map"`
	UserStories         string `json:"user_stories"`
	AsUser              string `json:"as_user"`
	UserWant            string `json:"user_want"`
	DefinitionOfDone    string `json:"definition_of_done"`
	Assignation         string `json:"assignation"`
	EstimatedDuration   string `json:"estimated_duration"`
	ManDays             string `json:"man_days"`
	Hours               string `json:"hours"`
	Status              string `json:"status"`
	Comments            string `json:"comments"`
	AdvancementReport   string `json:"advancement_report"`
	ToDo                string `json:"to_do"`
	WIP                 string `json:"wip"`
	Done                string `json:"done"`
	Abandoned           string `json:"abandoned"`
	ProjectLogDocument  string `json:"project_log_document"`
	Page                string `json:"page"`
	Of                  string `json:"of"`
}

// StatusLabel returns the display string for s, or "" for StatusUnknown.
func (d *Dictionary) StatusLabel(s domain.Status) string {
	switch s {
	case domain.StatusToDo:
		return d.ToDo
	case domain.StatusWIP:
		return d.WIP
	case domain.StatusDone:
		return d.Done
	case domain.StatusAbandoned:
		return d.Abandoned
	default:
		return ""
	}
}

// StatusFromLabel is the inverse of StatusLabel. Display strings that match
// no status yield StatusUnknown.
func (d *Dictionary) StatusFromLabel(label string) domain.Status {
	for _, s := range domain.Statuses {
		if d.StatusLabel(s) == label {
			return s
		}
	}
	return domain.StatusUnknown
}
