// Package document reads and writes the structured PLD document.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"github.com/ThalusA/PLDGenerator/internal/domain"
)

// SchemaURL tags every document written by this tool.
const SchemaURL = "https://raw.githubusercontent.com/ThalusA/PLDGenerator/master/pld_schema.json"

// Format selects the document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the encoding from a file extension. Anything that is not
// .yaml or .yml is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// File is the on-disk document: the PLD tagged with its schema URL.
type File struct {
	Schema     string `json:"$schema" yaml:"$schema"`
	domain.PLD `yaml:",inline"`
}

// New wraps p for saving.
func New(p *domain.PLD) *File {
	return &File{Schema: SchemaURL, PLD: *p}
}

// Load reads and decodes the document at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Decode parses a document in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode serializes f, filling in the schema URL when it is missing.
func Encode(f *File, format Format) ([]byte, error) {
	out := *f
	if out.Schema == "" {
		out.Schema = SchemaURL
	}
	if format == FormatYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes f to path atomically, in the format implied by its extension.
func Save(path string, f *File) error {
	data, err := Encode(f, FormatOf(path))
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
