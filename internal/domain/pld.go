package domain

// PLD is the root planning document.
type PLD struct {
	Title        string        `json:"title" yaml:"title"`
	Subtitle     *string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description  *string       `json:"description,omitempty" yaml:"description,omitempty"`
	Locale       string        `json:"locale" yaml:"locale"`
	Authors      []string      `json:"authors,omitempty" yaml:"authors,omitempty"`
	Versions     []Version     `json:"versions,omitempty" yaml:"versions,omitempty"`
	Deliverables []Deliverable `json:"deliverables,omitempty" yaml:"deliverables,omitempty"`
}

// LatestVersion returns the last recorded version, or nil when none exist.
func (p *PLD) LatestVersion() *Version {
	if len(p.Versions) == 0 {
		return nil
	}
	return &p.Versions[len(p.Versions)-1]
}

// Version is one row of the revision table. Versions are kept in append order.
type Version struct {
	Date     string   `json:"date" yaml:"date"`
	Version  string   `json:"version" yaml:"version"`
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Sections string   `json:"sections" yaml:"sections"`
	Comment  string   `json:"comment" yaml:"comment"`
}

type Deliverable struct {
	Name        string   `json:"name" yaml:"name"`
	Description *string  `json:"description,omitempty" yaml:"description,omitempty"`
	Subsets     []Subset `json:"subsets,omitempty" yaml:"subsets,omitempty"`
}

type Subset struct {
	Name        string      `json:"name" yaml:"name"`
	Description *string     `json:"description,omitempty" yaml:"description,omitempty"`
	UserStories []UserStory `json:"user_stories,omitempty" yaml:"user_stories,omitempty"`
}

// UserStory is the leaf unit of work. EstimatedDuration is in man-days.
type UserStory struct {
	Name              string   `json:"name" yaml:"name"`
	User              string   `json:"user" yaml:"user"`
	Action            string   `json:"action" yaml:"action"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	DefinitionsOfDone []string `json:"definitions_of_done,omitempty" yaml:"definitions_of_done,omitempty"`
	Assignments       []string `json:"assignments,omitempty" yaml:"assignments,omitempty"`
	EstimatedDuration float64  `json:"estimated_duration" yaml:"estimated_duration"`
	Status            Status   `json:"status,omitempty" yaml:"status,omitempty"`
	DueDate           string   `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	EndDate           string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Comments          Comments `json:"comments,omitzero" yaml:"comments,omitempty"`
}

// EstimatedHours converts the man-day estimate to whole hours, rounding up.
func (u *UserStory) EstimatedHours() int {
	return ceilHours(u.EstimatedDuration)
}
