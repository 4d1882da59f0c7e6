package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

var (
	// ErrMissingField indicates a locale file lacks one or more display strings.
	ErrMissingField = errors.New("locale field missing")

	// ErrUnknownLocale indicates no locale file exists for the requested code.
	ErrUnknownLocale = errors.New("unknown locale")
)

//go:embed locales/*.json
var builtin embed.FS

// Parse decodes a JSON (or JSONC) locale file and checks that every field of
// Dictionary is present and non-empty.
func Parse(code string, data []byte) (*Dictionary, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("locale %s: invalid JSONC: %w", code, err)
	}
	var d Dictionary
	if err := json.Unmarshal(standardized, &d); err != nil {
		return nil, fmt.Errorf("locale %s: %w", code, err)
	}
	if missing := missingFields(&d); len(missing) > 0 {
		return nil, fmt.Errorf("locale %s: %w: %s", code, ErrMissingField, strings.Join(missing, ", "))
	}
	d.Code = code
	return &d, nil
}

// Tokens returns every required field token in declaration order.
func Tokens() []string {
	t := reflect.TypeOf(Dictionary{})
	tokens := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := jsonName(t.Field(i)); tag != "" {
			tokens = append(tokens, tag)
		}
	}
	return tokens
}

// Words maps every field token to its display string.
func (d *Dictionary) Words() map[string]string {
	v := reflect.ValueOf(d).Elem()
	t := v.Type()
	words := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag := jsonName(t.Field(i)); tag != "" {
			words[tag] = v.Field(i).String()
		}
	}
	return words
}

func missingFields(d *Dictionary) []string {
	v := reflect.ValueOf(d).Elem()
	t := v.Type()
	var missing []string
	for i := 0; i < t.NumField(); i++ {
		tag := jsonName(t.Field(i))
		if tag == "" {
			continue
		}
		if strings.TrimSpace(v.Field(i).String()) == "" {
			missing = append(missing, tag)
		}
	}
	return missing
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Registry resolves locale codes to dictionaries. Files in Dir (named
// <code>.json) take precedence over the built-in locales.
type Registry struct {
	Dir string
}

// Load returns the dictionary for code.
func (r Registry) Load(code string) (*Dictionary, error) {
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	if r.Dir != "" {
		data, err := os.ReadFile(filepath.Join(r.Dir, code+".json"))
		if err == nil {
			return Parse(code, data)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading locale %s: %w", code, err)
		}
	}
	data, err := builtin.ReadFile("locales/" + code + ".json")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
	return Parse(code, data)
}

// Codes lists every locale code the registry can load, sorted.
func (r Registry) Codes() []string {
	seen := make(map[string]bool)
	if entries, err := builtin.ReadDir("locales"); err == nil {
		for _, e := range entries {
			seen[strings.TrimSuffix(e.Name(), ".json")] = true
		}
	}
	if r.Dir != "" {
		if entries, err := os.ReadDir(r.Dir); err == nil {
			for _, e := range entries {
				if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
					seen[strings.TrimSuffix(e.Name(), ".json")] = true
				}
			}
		}
	}
	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Load resolves code against the built-in locales only.
func Load(code string) (*Dictionary, error) {
	return Registry{}.Load(code)
}
