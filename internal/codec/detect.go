package codec

import (
	"fmt"

	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/locale"
)

// Detect finds the locale a root issue was rendered with. Each known locale
// is tried in turn; the first whose parse succeeds and whose locale row names
// that same locale wins.
func Detect(reg locale.Registry, root *domain.Issue) (*Codec, error) {
	for _, code := range reg.Codes() {
		dict, err := reg.Load(code)
		if err != nil {
			continue
		}
		c, err := New(dict)
		if err != nil {
			continue
		}
		p, err := c.ParsePLD(root)
		if err == nil && p.Locale == code {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no locale matches issue #%d (%s)", locale.ErrUnknownLocale, root.Number, root.URL)
}
