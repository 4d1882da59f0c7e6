package domain

// Issue is a tracker issue as seen by the codec and the tree builder.
type Issue struct {
	Number int
	Title  string
	Body   string
	Labels []string
	// URL is the user-facing address of the issue, reported on parse failures.
	URL string
}

// Label is a tracker label.
type Label struct {
	Name        string
	Color       string
	Description string
}
