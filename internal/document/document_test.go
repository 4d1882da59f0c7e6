package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

func TestLoad_JSON(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "plan.json"))
	require.NoError(t, err)

	assert.Equal(t, SchemaURL, f.Schema)
	assert.Equal(t, "Project Log Document", f.Title)
	require.NotNil(t, f.Subtitle)
	assert.Nil(t, f.Description)
	require.Len(t, f.Deliverables, 1)

	stories := f.Deliverables[0].Subsets[0].UserStories
	require.Len(t, stories, 2)
	assert.Equal(t, domain.StatusWIP, stories[0].Status)
	assert.Equal(t, domain.InlineComment("ok"), stories[0].Comments)
	assert.Equal(t, domain.CommentList("a", "b"), stories[1].Comments)
}

func TestLoad_YAMLMatchesJSON(t *testing.T) {
	fromJSON, err := Load(filepath.Join("testdata", "plan.json"))
	require.NoError(t, err)
	fromYAML, err := Load(filepath.Join("testdata", "plan.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("yaml and json documents differ (-json +yaml):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": `), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parsing")
}

func TestSave_RoundTrip(t *testing.T) {
	original, err := Load(filepath.Join("testdata", "plan.json"))
	require.NoError(t, err)

	for _, name := range []string{"out.json", "nested/out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, original))

			reloaded, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(original, reloaded); diff != "" {
				t.Errorf("save/load mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode_FillsSchemaAndOmitsAbsent(t *testing.T) {
	f := &File{PLD: domain.PLD{Title: "Bare", Locale: "en_US"}}
	data, err := Encode(f, FormatJSON)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"$schema": "`+SchemaURL+`"`)
	assert.NotContains(t, out, "subtitle")
	assert.NotContains(t, out, "deliverables")
	assert.Empty(t, f.Schema, "input must not be modified")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("PLAN.YML"))
	assert.Equal(t, FormatJSON, FormatOf("plan.json"))
	assert.Equal(t, FormatJSON, FormatOf("plan"))
}
