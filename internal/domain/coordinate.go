package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is the dotted numeric title prefix locating an issue in the
// hierarchy. Components are 1-based; an empty coordinate is the root.
type Coordinate []int

func (c Coordinate) String() string {
	parts := make([]string, len(c))
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Child returns the coordinate of the index-th child (1-based).
func (c Coordinate) Child(index int) Coordinate {
	out := make(Coordinate, len(c), len(c)+1)
	copy(out, c)
	return append(out, index)
}

// Title formats an issue title for a node at c with the given display name.
func (c Coordinate) Title(name string) string {
	if len(c) == 0 {
		return name
	}
	return c.String() + " " + name
}

// ParseCoordinate parses a dotted numeric prefix such as "2.3.1".
// A zero component is rejected: index 0 is never a valid sibling position.
func ParseCoordinate(s string) (Coordinate, error) {
	if s == "" {
		return nil, fmt.Errorf("empty coordinate")
	}
	parts := strings.Split(s, ".")
	out := make(Coordinate, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.HasPrefix(p, "+") {
			return nil, fmt.Errorf("coordinate %q: component %q is not a number", s, p)
		}
		if n == 0 {
			return nil, fmt.Errorf("coordinate %q: component 0 is reserved", s)
		}
		out = append(out, n)
	}
	return out, nil
}

// SplitTitle splits an issue title at the first space into its coordinate
// prefix and display name.
func SplitTitle(title string) (prefix, name string) {
	prefix, name, _ = strings.Cut(title, " ")
	return prefix, name
}

// ParseTitle extracts the coordinate and display name from a numbered title.
func ParseTitle(title string) (Coordinate, string, error) {
	prefix, name := SplitTitle(title)
	coord, err := ParseCoordinate(prefix)
	if err != nil {
		return nil, "", fmt.Errorf("title %q: %w", title, err)
	}
	return coord, name, nil
}
