// Package codec renders plan entities into tracker issue bodies and parses
// them back. Every body kind is described by one template, from which both
// the renderer and the parse pattern are derived.
package codec

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
)

var errMissingWord = locale.ErrMissingField

// checklistTail matches the generated checklist closing a container body,
// with or without blank lines between entries, so a description keeps any
// text it holds before it.
var checklistTail = `(?:\n\n` + regexp.QuoteMeta(linkedIssuesHeading) +
	`[ \t]*\n(?:\n?[ \t]*[-*] \[[ xX]\] #\d+[ \t]*)*\n?)?\z`

// Warning reports a recoverable oddity met while parsing a body.
type Warning struct {
	Issue   *domain.Issue
	Message string
}

// Codec renders and parses issue bodies for one locale.
type Codec struct {
	dict *locale.Dictionary

	pld        *skeleton
	versionRow *skeleton
	container  *skeleton
	userStory  *skeleton

	commentsInline *skeleton
	commentsList   *skeleton

	// Warn, when set, receives recoverable parse oddities such as a status
	// display string that matches no known status.
	Warn func(Warning)
}

// New compiles the body templates against dict.
func New(dict *locale.Dictionary) (*Codec, error) {
	if dict == nil {
		return nil, errors.New("codec: nil dictionary")
	}
	words := dict.Words()
	c := &Codec{dict: dict}

	var err error
	c.pld, err = compileSkeleton(pldTemplate, words, []slot{
		{name: "title", pattern: cellPattern},
		{name: "subtitle", pattern: cellPattern},
		{name: "description", pattern: cellPattern},
		{name: "locale", pattern: cellPattern},
		{name: "authors", pattern: cellPattern},
		{name: "updated_date", pattern: cellPattern},
		{name: "model_version", pattern: cellPattern},
		{name: "versions", pattern: lazyPattern, loose: true},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: pld template: %w", dict.Code, err)
	}

	c.versionRow, err = compileSkeleton(versionRowTemplate, words, []slot{
		{name: "date", pattern: cellPattern},
		{name: "version", pattern: cellPattern},
		{name: "authors", pattern: cellPattern},
		{name: "sections", pattern: cellPattern},
		{name: "comment", pattern: cellPattern},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: version row template: %w", dict.Code, err)
	}

	c.container, err = compileSkeleton(containerTemplate, words, []slot{
		{name: "description", pattern: lazyPattern},
	}, checklistTail)
	if err != nil {
		return nil, fmt.Errorf("locale %s: container template: %w", dict.Code, err)
	}

	inline, err := compileSkeleton(inlineCommentTemplate, words, []slot{
		{name: "comments_text", pattern: cellPattern},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: comment template: %w", dict.Code, err)
	}
	list, err := compileSkeleton(listCommentTemplate, words, []slot{
		{name: "comments_items", pattern: lazyPattern, loose: true},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: comment list template: %w", dict.Code, err)
	}
	empty, err := compileSkeleton(emptyCommentTemplate, words, nil, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: empty comment template: %w", dict.Code, err)
	}

	c.userStory, err = compileSkeleton(userStoryTemplate, words, []slot{
		{name: "name", pattern: cellPattern},
		{name: "user", pattern: cellPattern},
		{name: "action", pattern: cellPattern},
		{name: "description", pattern: cellPattern},
		{name: "definitions_of_done", pattern: lazyPattern, loose: true},
		{name: "assignments", pattern: cellPattern},
		{name: "estimated_duration", pattern: numberPattern, loose: true},
		{name: "estimated_hours", pattern: intPattern, loose: true},
		{name: "status", pattern: `[^<]*?`, loose: true},
		{name: "due_date", pattern: cellPattern},
		{name: "end_date", pattern: cellPattern},
		{name: "comments", pattern: `(?:` + inline.source() + `|` + list.source() + `|` + empty.source() + `)?`, loose: true},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("locale %s: user story template: %w", dict.Code, err)
	}
	c.commentsInline, c.commentsList = inline, list

	return c, nil
}

// Dictionary returns the locale the codec was built for.
func (c *Codec) Dictionary() *locale.Dictionary { return c.dict }

func (c *Codec) warn(issue *domain.Issue, format string, args ...any) {
	if c.Warn != nil {
		c.Warn(Warning{Issue: issue, Message: fmt.Sprintf(format, args...)})
	}
}

func escape(s string) string   { return html.EscapeString(s) }
func unescape(s string) string { return html.UnescapeString(s) }
