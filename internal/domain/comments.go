package domain

import (
	"encoding/json"
	"fmt"
)

// Comments holds either a single inline comment or an ordered list of them.
// The document format encodes the first as a JSON string and the second as
// an array.
type Comments struct {
	Text   string
	Items  []string
	IsList bool
}

// InlineComment returns Comments holding a single string.
func InlineComment(text string) Comments {
	return Comments{Text: text}
}

// CommentList returns Comments holding a list.
func CommentList(items ...string) Comments {
	return Comments{Items: items, IsList: true}
}

// IsZero reports whether there is nothing to render.
func (c Comments) IsZero() bool {
	if c.IsList {
		return len(c.Items) == 0
	}
	return c.Text == ""
}

func (c Comments) MarshalJSON() ([]byte, error) {
	if c.IsList {
		items := c.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(c.Text)
}

func (c *Comments) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Comments{}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = InlineComment(text)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("comments must be a string or a list of strings: %w", err)
	}
	*c = CommentList(items...)
	return nil
}

func (c Comments) MarshalYAML() (any, error) {
	if c.IsList {
		return c.Items, nil
	}
	return c.Text, nil
}

func (c *Comments) UnmarshalYAML(unmarshal func(any) error) error {
	var text string
	if err := unmarshal(&text); err == nil {
		*c = InlineComment(text)
		return nil
	}
	var items []string
	if err := unmarshal(&items); err != nil {
		return fmt.Errorf("comments must be a string or a list of strings: %w", err)
	}
	*c = CommentList(items...)
	return nil
}
