package codec

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragmentItems parses a markup fragment and returns the text of each <li>
// element in document order.
func fragmentItems(fragment string) []string {
	nodes := parseFragment(fragment, atom.Ul)
	var items []string
	for _, n := range nodes {
		walk(n, func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.DataAtom == atom.Li {
				items = append(items, textContent(n))
				return false
			}
			return true
		})
	}
	return items
}

// fragmentRows parses a fragment of <tr> elements and returns the text of
// each row's cells.
func fragmentRows(fragment string) [][]string {
	nodes := parseFragment(fragment, atom.Tbody)
	var rows [][]string
	for _, n := range nodes {
		walk(n, func(n *html.Node) bool {
			if n.Type != html.ElementNode || n.DataAtom != atom.Tr {
				return true
			}
			var cells []string
			for td := n.FirstChild; td != nil; td = td.NextSibling {
				if td.Type == html.ElementNode && (td.DataAtom == atom.Td || td.DataAtom == atom.Th) {
					cells = append(cells, textContent(td))
				}
			}
			rows = append(rows, cells)
			return false
		})
	}
	return rows
}

func parseFragment(fragment string, context atom.Atom) []*html.Node {
	ctx := &html.Node{Type: html.ElementNode, Data: context.String(), DataAtom: context}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil
	}
	return nodes
}

// walk visits n depth-first; visit returns false to skip n's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}
