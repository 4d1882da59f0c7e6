package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ThalusA/PLDGenerator/internal/codec"
	"github.com/ThalusA/PLDGenerator/internal/domain"
	"github.com/ThalusA/PLDGenerator/internal/tree"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Number int // issue number; 0 means don't display
	Level  int
	IsLast bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Done items get a green ✔ prefix,
// in-progress items get an amber ▶ prefix, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string // prefix + statusPrefix + title (styled)
		badge   string // styled badge or ""
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Number > 0 {
			title = StyleDim.Render(fmt.Sprintf("#%d ", item.Number)) + title
		}
		statusPrefix := ""

		isCompleted := strings.EqualFold(item.Status, "done") ||
			strings.EqualFold(item.Status, "completed")
		isActive := strings.EqualFold(item.Status, "in_progress")

		if isCompleted {
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		} else if isActive {
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// FormatTree renders the issue hierarchy followed by the issues that could
// not be placed in it. Containers show their checklist progress; a story is
// done when its parent checks it off.
func FormatTree(t *tree.Tree) string {
	var items []TreeItem
	items = append(items, containerItem(t.Root, nil, 0, true))
	items = appendChildren(items, t.Root, nil, 1)

	var b strings.Builder
	b.WriteString(RenderTree(items))

	if len(t.Skipped) > 0 {
		b.WriteString("\n" + Header("Skipped") + "\n")
		for _, issue := range t.Skipped {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleDim.Render(fmt.Sprintf("#%d", issue.Number)), issue.Title, Dim(labelsHint(issue.Labels))))
		}
	}
	if len(t.Duplicates) > 0 {
		b.WriteString("\n" + Header("Duplicates") + "\n")
		for _, issue := range t.Duplicates {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render(fmt.Sprintf("#%d", issue.Number)), issue.Title))
		}
	}
	if len(t.Malformed) > 0 {
		b.WriteString("\n" + Header("Malformed") + "\n")
		for _, m := range t.Malformed {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleRed.Render(fmt.Sprintf("#%d", m.Issue.Number)), m.Issue.Title, Dim(m.Reason)))
		}
	}
	return b.String()
}

func appendChildren(items []TreeItem, n *tree.Node, path domain.Coordinate, level int) []TreeItem {
	indices := n.Indices()
	var checked map[int]bool
	if n.Issue != nil {
		checked = codec.Checked(n.Issue.Body)
	}
	for i, idx := range indices {
		child := n.Children[idx]
		childPath := path.Child(idx)
		last := i == len(indices)-1
		if len(childPath) == domain.CategoryUserStory.Depth() {
			item := TreeItem{Level: level, IsLast: last}
			if child.Issue == nil {
				item.Title = Dim(childPath.String() + " (missing)")
			} else {
				item.Title = child.Issue.Title
				item.Number = child.Issue.Number
				if checked[child.Issue.Number] {
					item.Status = "done"
				}
			}
			items = append(items, item)
			continue
		}
		items = append(items, containerItem(child, childPath, level, last))
		items = appendChildren(items, child, childPath, level+1)
	}
	return items
}

func containerItem(n *tree.Node, path domain.Coordinate, level int, last bool) TreeItem {
	item := TreeItem{Level: level, IsLast: last}
	if n.Issue == nil {
		name := path.String()
		if len(path) == 0 {
			name = "PLD"
		}
		item.Title = Dim(name + " (missing)")
		return item
	}
	item.Title = n.Issue.Title
	item.Number = n.Issue.Number
	done, total := codec.Progress(n.Issue.Body)
	if total > 0 {
		item.Detail = fmt.Sprintf("%d/%d", done, total)
		switch {
		case done == total:
			item.Status = "done"
		case done > 0:
			item.Status = "in_progress"
		}
	}
	return item
}

func labelsHint(labels []string) string {
	if len(labels) == 0 {
		return "(no labels)"
	}
	return "(" + strings.Join(labels, ", ") + ")"
}
