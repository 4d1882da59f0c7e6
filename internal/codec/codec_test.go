package codec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
)

// goldenTest compares got against testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")
	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll("testdata", 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(got), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)
	assert.Equal(t, string(expected), got,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func TestRender_Golden(t *testing.T) {
	en := newCodec(t, "en_US")
	fr := newCodec(t, "fr_FR")

	tests := []struct {
		name string
		got  string
	}{
		{"pld_full", en.RenderPLD(fullPLD(), &Checklist{Previous: "- [x] #3\n- [ ] #4\n", Children: []int{3, 4, 9}})},
		{"pld_minimal", en.RenderPLD(minimalPLD(), nil)},
		{"deliverable_checklist", en.RenderDeliverable(&domain.Deliverable{
			Name:        "Accounts",
			Description: ptr("Accounts and authentication"),
		}, &Checklist{Children: []int{5, 8}})},
		{"subset_empty", en.RenderSubset(&domain.Subset{Name: "Sessions"}, nil)},
		{"user_story_full", en.RenderUserStory(fullStory())},
		{"user_story_comment_list", en.RenderUserStory(listCommentStory())},
		{"user_story_minimal", en.RenderUserStory(minimalStory())},
		{"user_story_fr_FR", fr.RenderUserStory(fullStory())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goldenTest(t, tt.name, tt.got)
		})
	}
}

func TestParse_Golden(t *testing.T) {
	en := newCodec(t, "en_US")

	read := func(t *testing.T, name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join("testdata", name+".golden"))
		require.NoError(t, err)
		return string(data)
	}

	t.Run("pld", func(t *testing.T) {
		got, err := en.ParsePLD(&domain.Issue{Number: 1, Body: read(t, "pld_full")})
		require.NoError(t, err)
		if diff := cmp.Diff(fullPLD(), got); diff != "" {
			t.Errorf("ParsePLD mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("user story", func(t *testing.T) {
		got, err := en.ParseUserStory(&domain.Issue{Number: 2, Body: read(t, "user_story_full")})
		require.NoError(t, err)
		if diff := cmp.Diff(fullStory(), got); diff != "" {
			t.Errorf("ParseUserStory mismatch (-want +got):\n%s", diff)
		}
	})

	// Bodies written by earlier releases close the date rows with <br> and
	// never carry the text of a string comment.
	legacyText := fullStory()
	legacyText.Comments = domain.Comments{}
	legacy := []struct {
		name string
		want *domain.UserStory
	}{
		{"user_story_legacy_list", listCommentStory()},
		{"user_story_legacy_text", legacyText},
	}
	for _, tt := range legacy {
		t.Run(tt.name, func(t *testing.T) {
			got, err := en.ParseUserStory(&domain.Issue{Number: 2, Body: read(t, tt.name)})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseUserStory mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_PLD(t *testing.T) {
	c := newCodec(t, "en_US")
	for name, p := range map[string]*domain.PLD{
		"full":    fullPLD(),
		"minimal": minimalPLD(),
	} {
		t.Run(name, func(t *testing.T) {
			body := c.RenderPLD(p, &Checklist{Children: []int{2, 3}})
			got, err := c.ParsePLD(&domain.Issue{Number: 1, Title: p.Title, Body: body})
			require.NoError(t, err)
			if diff := cmp.Diff(p, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_Containers(t *testing.T) {
	c := newCodec(t, "en_US")
	tests := []struct {
		name      string
		desc      *string
		checklist *Checklist
		want      *string
	}{
		{"description and checklist", ptr("Accounts\nand sessions"), &Checklist{Children: []int{4}}, ptr("Accounts\nand sessions")},
		{"description only", ptr("Accounts"), nil, ptr("Accounts")},
		{"absent description", nil, &Checklist{Children: []int{4, 5}}, nil},
		{"absent description without checklist", nil, nil, nil},
		{"empty description normalizes to absent", ptr(""), nil, nil},
		{"leading indentation", ptr("    indented code\nline"), &Checklist{Children: []int{4}}, ptr("    indented code\nline")},
		{"leading indentation without checklist", ptr("    indented code"), nil, ptr("    indented code")},
		{"leading blank line", ptr("\nafter a blank line"), nil, ptr("\nafter a blank line")},
		{"trailing newline", ptr("trailing\n"), &Checklist{Children: []int{4}}, ptr("trailing\n")},
		{"trailing newline without checklist", ptr("trailing\n"), nil, ptr("trailing\n")},
		{"heading text inside description", ptr("text\n\n# Linked issues\nmore"), &Checklist{Children: []int{4, 5}}, ptr("text\n\n# Linked issues\nmore")},
		{"heading text inside description without checklist", ptr("text\n\n# Linked issues\nmore"), nil, ptr("text\n\n# Linked issues\nmore")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &domain.Deliverable{Name: "Accounts", Description: tt.desc}
			issue := &domain.Issue{Number: 3, Title: "1 Accounts", Body: c.RenderDeliverable(d, tt.checklist)}
			gotD, err := c.ParseDeliverable(issue)
			require.NoError(t, err)
			assert.Equal(t, "Accounts", gotD.Name)
			assert.Equal(t, tt.want, gotD.Description)

			s := &domain.Subset{Name: "Sessions", Description: tt.desc}
			issue = &domain.Issue{Number: 4, Title: "1.2 Sessions", Body: c.RenderSubset(s, tt.checklist)}
			gotS, err := c.ParseSubset(issue)
			require.NoError(t, err)
			assert.Equal(t, "Sessions", gotS.Name)
			assert.Equal(t, tt.want, gotS.Description)
		})
	}
}

func TestParseContainer_EmptyBody(t *testing.T) {
	c := newCodec(t, "en_US")

	d, err := c.ParseDeliverable(&domain.Issue{Number: 3, Title: "2 Billing", Body: ""})
	require.NoError(t, err)
	assert.Equal(t, "Billing", d.Name)
	assert.Nil(t, d.Description)

	s, err := c.ParseSubset(&domain.Issue{Number: 4, Title: "2.1 Invoices", Body: "\n\n# Linked issues\n\n- [ ] #9\n"})
	require.NoError(t, err)
	assert.Nil(t, s.Description)
}

func TestParseContainer_ChecklistLayouts(t *testing.T) {
	c := newCodec(t, "en_US")
	tests := []struct {
		name string
		body string
		want *string
	}{
		{"compact entries without final newline", "# Description\n\nAccounts\n\n# Linked issues\n- [ ] #5\n- [x] #8", ptr("Accounts")},
		{"heading with trailing space", "# Description\n\nAccounts\n\n# Linked issues \n- [ ] #5", ptr("Accounts")},
		{"blank-separated entries", "# Description\n\nAccounts\n\n# Linked issues\n\n- [ ] #5\n- [x] #8", ptr("Accounts")},
		{"crlf line endings", "# Description\r\n\r\nAccounts\r\n\r\n# Linked issues\r\n\r\n- [ ] #5\r\n", ptr("Accounts")},
		{"heading only", "# Description\n\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := c.ParseDeliverable(&domain.Issue{Number: 3, Title: "1 Accounts", Body: tt.body})
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Description)
		})
	}
}

func TestRoundTrip_UserStory(t *testing.T) {
	escaped := fullStory()
	escaped.Name = `<b>"Tom" & 'Jerry'</b>`
	escaped.Description = "a < b\nand b > c"
	escaped.DefinitionsOfDone = []string{"<script>", "  spaced  "}
	escaped.Comments = domain.InlineComment("x & y")

	precise := minimalStory()
	precise.EstimatedDuration = 0.1 + 0.2

	tests := map[string]*domain.UserStory{
		"all fields":       fullStory(),
		"comment list":     listCommentStory(),
		"optional absent":  minimalStory(),
		"markup in values": escaped,
		"float precision":  precise,
	}
	for _, code := range []string{"en_US", "fr_FR"} {
		c := newCodec(t, code)
		for name, u := range tests {
			t.Run(code+"/"+name, func(t *testing.T) {
				body := c.RenderUserStory(u)
				got, err := c.ParseUserStory(&domain.Issue{Number: 7, Title: "1.1.1 " + u.Name, Body: body})
				require.NoError(t, err)
				if diff := cmp.Diff(u, got); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestParseUserStory_WhitespaceInsensitive(t *testing.T) {
	c := newCodec(t, "en_US")
	body := c.RenderUserStory(fullStory())

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	reflowed := strings.Join(lines, "\r\n")

	got, err := c.ParseUserStory(&domain.Issue{Number: 7, Body: reflowed})
	require.NoError(t, err)
	assert.Equal(t, fullStory(), got)
}

func TestRenderUserStory_HoursAnnotation(t *testing.T) {
	c := newCodec(t, "en_US")
	u := minimalStory()
	u.EstimatedDuration = 1.5

	assert.Contains(t, c.RenderUserStory(u), "1.5 man-days (12 hours)")
}

func TestRenderUserStory_Comments(t *testing.T) {
	c := newCodec(t, "en_US")

	inline := c.RenderUserStory(fullStory())
	assert.Contains(t, inline, "Comments: ok<br>")
	assert.NotContains(t, inline, "<li>ok</li>")

	list := c.RenderUserStory(listCommentStory())
	assert.Contains(t, list, "<li>a</li>")
	assert.Contains(t, list, "<li>b</li>")
	assert.Equal(t, 1, strings.Count(list, "Comments:"))

	none := c.RenderUserStory(minimalStory())
	assert.NotContains(t, none, "Comments")
}

func TestParseUserStory_UnrecognizedStatus(t *testing.T) {
	c := newCodec(t, "en_US")
	var warnings []Warning
	c.Warn = func(w Warning) { warnings = append(warnings, w) }

	body := strings.Replace(c.RenderUserStory(fullStory()), "In progress", "Blocked", 1)
	issue := &domain.Issue{Number: 12, Body: body}
	got, err := c.ParseUserStory(issue)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusUnknown, got.Status)
	require.Len(t, warnings, 1)
	assert.Same(t, issue, warnings[0].Issue)
	assert.Contains(t, warnings[0].Message, "Blocked")
}

func TestParse_MalformedBodyReportsURL(t *testing.T) {
	c := newCodec(t, "en_US")
	issue := &domain.Issue{Number: 42, Title: "1.1.1 Broken", Body: "just some text", URL: "https://github.com/acme/plan/issues/42"}

	tests := map[string]func() error{
		"pld":         func() error { _, err := c.ParsePLD(issue); return err },
		"deliverable": func() error { _, err := c.ParseDeliverable(issue); return err },
		"subset":      func() error { _, err := c.ParseSubset(issue); return err },
		"user story":  func() error { _, err := c.ParseUserStory(issue); return err },
	}
	for name, parse := range tests {
		t.Run(name, func(t *testing.T) {
			err := parse()
			require.ErrorIs(t, err, ErrMalformedBody)

			var mbe *MalformedBodyError
			require.True(t, errors.As(err, &mbe))
			assert.Equal(t, 42, mbe.Number)
			assert.Equal(t, issue.URL, mbe.URL)
			assert.Contains(t, err.Error(), issue.URL)
		})
	}
}

func TestParse_WrongLocaleIsMalformed(t *testing.T) {
	en := newCodec(t, "en_US")
	fr := newCodec(t, "fr_FR")

	_, err := fr.ParseUserStory(&domain.Issue{Number: 1, Body: en.RenderUserStory(fullStory())})
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestChecklist_PreservesManualMarks(t *testing.T) {
	c := newCodec(t, "en_US")
	d := &domain.Deliverable{Name: "Accounts"}

	first := c.RenderDeliverable(d, &Checklist{Children: []int{7, 8}})
	assert.Contains(t, first, "- [ ] #7\n")

	// Checked by hand in the tracker UI.
	edited := strings.Replace(first, "- [ ] #7", "- [x] #7", 1)

	again := c.RenderDeliverable(d, &Checklist{Previous: edited, Children: []int{7, 8, 9}})
	assert.Contains(t, again, "- [x] #7\n")
	assert.Contains(t, again, "- [ ] #8\n")
	assert.Contains(t, again, "- [ ] #9\n")

	assert.Equal(t, again, c.RenderDeliverable(d, &Checklist{Previous: again, Children: []int{7, 8, 9}}))
}

func TestChecked(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[int]bool
	}{
		{"lower x", "- [x] #7", map[int]bool{7: true}},
		{"upper X", "- [X] #7", map[int]bool{7: true}},
		{"unchecked", "- [ ] #7", map[int]bool{}},
		{"whole numbers", "- [x] #70", map[int]bool{70: true}},
		{"indented", "text\n  - [x] #3\n* [x] #4", map[int]bool{3: true, 4: true}},
		{"mid line ignored", "see - [x] #5", map[int]bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checked(tt.body))
		})
	}

	c := &Checklist{Previous: "- [x] #70", Children: []int{7}}
	assert.Contains(t, c.render(), "- [ ] #7\n")
}

func TestProgress(t *testing.T) {
	done, total := Progress("# Linked issues\n\n- [x] #1\n- [ ] #2\n- [X] #3\n")
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestDetect(t *testing.T) {
	for _, code := range []string{"en_US", "fr_FR"} {
		t.Run(code, func(t *testing.T) {
			p := fullPLD()
			p.Locale = code
			body := newCodec(t, code).RenderPLD(p, nil)

			c, err := Detect(locale.Registry{}, &domain.Issue{Number: 1, Body: body})
			require.NoError(t, err)
			assert.Equal(t, code, c.Dictionary().Code)
		})
	}

	t.Run("locale row disagrees", func(t *testing.T) {
		p := fullPLD()
		p.Locale = "fr_FR"
		body := newCodec(t, "en_US").RenderPLD(p, nil)

		_, err := Detect(locale.Registry{}, &domain.Issue{Number: 1, Body: body, URL: "https://example.test/1"})
		assert.ErrorIs(t, err, locale.ErrUnknownLocale)
	})
}

func TestNew_NilDictionary(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestNew_EmptyWordFails(t *testing.T) {
	dict, err := locale.Load("en_US")
	require.NoError(t, err)
	broken := *dict
	broken.AsUser = ""

	_, err = New(&broken)
	assert.ErrorIs(t, err, locale.ErrMissingField)
}
