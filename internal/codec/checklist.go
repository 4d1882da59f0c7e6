package codec

import (
	"regexp"
	"strconv"
	"strings"
)

// Checklist carries what a container render needs to emit its Linked issues
// section: the current body of the container issue, if any, and the issue
// numbers of its direct children in order.
type Checklist struct {
	Previous string
	Children []int
}

var checkedPattern = regexp.MustCompile(`(?m)^[ \t]*[-*] \[[xX]\] #(\d+)`)

// Checked returns the issue numbers marked done in body.
func Checked(body string) map[int]bool {
	checked := make(map[int]bool)
	for _, m := range checkedPattern.FindAllStringSubmatch(body, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			checked[n] = true
		}
	}
	return checked
}

var entryPattern = regexp.MustCompile(`(?m)^[ \t]*[-*] \[([ xX])\] #(\d+)`)

// Progress counts checklist entries in body and how many are checked.
func Progress(body string) (done, total int) {
	for _, m := range entryPattern.FindAllStringSubmatch(body, -1) {
		total++
		if m[1] != " " {
			done++
		}
	}
	return done, total
}

func (c *Checklist) render() string {
	if c == nil || len(c.Children) == 0 {
		return ""
	}
	checked := Checked(c.Previous)
	var b strings.Builder
	b.WriteString("\n\n" + linkedIssuesHeading + "\n\n")
	for _, n := range c.Children {
		if checked[n] {
			b.WriteString("- [x] #")
		} else {
			b.WriteString("- [ ] #")
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteString("\n")
	}
	return b.String()
}
