package codec

import (
	"fmt"
	"regexp"
	"strings"
)

// A skeleton is the literal structure of one body kind. Rendering fills its
// slots; parsing matches a pattern derived from the same segments, so the two
// directions cannot drift apart.
type skeleton struct {
	segments []segment
	tail     string
	re       *regexp.Regexp
}

type segment struct {
	text string // localized, escaped literal
	slot *slot
	// alts are literal spellings accepted on parse; render writes the first.
	alts []string
}

type slot struct {
	name    string
	pattern string
	// loose slots tolerate arbitrary whitespace on both sides; whitespace next
	// to a strict slot is matched exactly so values keep their spacing.
	loose bool
}

var markerPattern = regexp.MustCompile(`\{\{(\w+)\}\}|\[\[(\w+)\]\]|\(\(([^()]*)\)\)`)

// compileSkeleton parses tmpl, where {{name}} marks a slot, [[token]] a
// locale display string and ((a|b)) a literal with alternative spellings.
// tail is appended verbatim to the derived pattern.
func compileSkeleton(tmpl string, words map[string]string, slots []slot, tail string) (*skeleton, error) {
	byName := make(map[string]*slot, len(slots))
	for i := range slots {
		byName[slots[i].name] = &slots[i]
	}

	s := &skeleton{tail: tail}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			s.segments = append(s.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	pos := 0
	for _, m := range markerPattern.FindAllStringSubmatchIndex(tmpl, -1) {
		lit.WriteString(tmpl[pos:m[0]])
		pos = m[1]
		if m[2] >= 0 {
			name := tmpl[m[2]:m[3]]
			sl, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("template slot %q has no definition", name)
			}
			flush()
			s.segments = append(s.segments, segment{slot: sl})
			continue
		}
		if m[6] >= 0 {
			flush()
			s.segments = append(s.segments, segment{alts: strings.Split(tmpl[m[6]:m[7]], "|")})
			continue
		}
		token := tmpl[m[4]:m[5]]
		word, ok := words[token]
		if !ok || word == "" {
			return nil, fmt.Errorf("%w: %s", errMissingWord, token)
		}
		lit.WriteString(escape(word))
	}
	lit.WriteString(tmpl[pos:])
	flush()

	re, err := regexp.Compile(`(?s)` + s.source() + tail)
	if err != nil {
		return nil, fmt.Errorf("compiling body pattern: %w", err)
	}
	s.re = re
	return s, nil
}

// render fills every slot from values. Values must already be escaped.
func (s *skeleton) render(values map[string]string) string {
	var b strings.Builder
	for _, seg := range s.segments {
		if seg.slot != nil {
			b.WriteString(values[seg.slot.name])
			continue
		}
		if seg.alts != nil {
			b.WriteString(seg.alts[0])
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// source is the regexp source matching a render of s, without flags or tail.
func (s *skeleton) source() string {
	var b strings.Builder
	for i, seg := range s.segments {
		if seg.slot != nil {
			b.WriteString("(?P<" + seg.slot.name + ">" + seg.slot.pattern + ")")
			continue
		}
		if seg.alts != nil {
			alts := make([]string, len(seg.alts))
			for j, alt := range seg.alts {
				alts[j] = literalPattern(alt, false, false)
			}
			b.WriteString("(?:" + strings.Join(alts, "|") + ")")
			continue
		}
		strictBefore := i > 0 && s.segments[i-1].slot != nil && !s.segments[i-1].slot.loose
		strictAfter := i+1 < len(s.segments) && s.segments[i+1].slot != nil && !s.segments[i+1].slot.loose
		b.WriteString(literalPattern(seg.text, strictBefore, strictAfter))
	}
	return b.String()
}

func literalPattern(text string, strictStart, strictEnd bool) string {
	runs := splitRuns(text)
	var b strings.Builder
	for i, run := range runs {
		if !isSpace(run[0]) {
			b.WriteString(regexp.QuoteMeta(run))
			continue
		}
		if (i == 0 && strictStart) || (i == len(runs)-1 && strictEnd) {
			b.WriteString(regexp.QuoteMeta(run))
			continue
		}
		b.WriteString(`\s*`)
	}
	return b.String()
}

// splitRuns cuts text into alternating whitespace and non-whitespace runs.
func splitRuns(text string) []string {
	var runs []string
	start := 0
	for i := 1; i < len(text); i++ {
		if isSpace(text[i]) != isSpace(text[start]) {
			runs = append(runs, text[start:i])
			start = i
		}
	}
	if start < len(text) {
		runs = append(runs, text[start:])
	}
	return runs
}

// isSpace matches the RE2 \s class.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// match holds the named groups of one successful pattern match.
type match struct {
	body  string
	index []int
	re    *regexp.Regexp
}

func (s *skeleton) match(body string) (*match, bool) {
	idx := s.re.FindStringSubmatchIndex(body)
	if idx == nil {
		return nil, false
	}
	return &match{body: body, index: idx, re: s.re}, true
}

// group returns the text captured by name and whether the group participated.
func (m *match) group(name string) (string, bool) {
	i := m.re.SubexpIndex(name)
	if i < 0 || m.index[2*i] < 0 {
		return "", false
	}
	return m.body[m.index[2*i]:m.index[2*i+1]], true
}

// text returns the unescaped value captured by name.
func (m *match) text(name string) string {
	v, _ := m.group(name)
	return unescape(v)
}
