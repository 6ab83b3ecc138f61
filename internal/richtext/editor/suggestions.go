package editor

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const suggestionMarkerClass = "ck-suggestion-marker"

// StripSuggestionHighlights удаляет из HTML разметку предложений правок и комментариев:
// маркеры начала и конца удаляются, span-подсветки разворачиваются в свое содержимое.
func StripSuggestionHighlights(raw string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", err
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	stripNode(container)

	var buf bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// HasSuggestionHighlights сообщает, что в HTML есть разметка предложений правок.
func HasSuggestionHighlights(raw string) bool {
	return strings.Contains(raw, suggestionMarkerClass) || strings.Contains(raw, "<suggestion-")
}

func stripNode(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.ElementNode && isMarkerBoundary(c):
			n.RemoveChild(c)
		case c.Type == html.ElementNode && isHighlight(c):
			stripNode(c)
			for gc := c.FirstChild; gc != nil; {
				gnext := gc.NextSibling
				c.RemoveChild(gc)
				n.InsertBefore(gc, c)
				gc = gnext
			}
			n.RemoveChild(c)
		default:
			stripNode(c)
		}
		c = next
	}
}

func isMarkerBoundary(n *html.Node) bool {
	switch n.Data {
	case "suggestion-start", "suggestion-end", "comment-start", "comment-end":
		return true
	}
	return false
}

func isHighlight(n *html.Node) bool {
	for _, class := range classes(n) {
		if strings.HasPrefix(class, suggestionMarkerClass) {
			return true
		}
	}
	return false
}
