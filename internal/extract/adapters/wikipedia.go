package adapters

import (
	"strings"

	"golang.org/x/net/html"
)

// WikipediaAdapter reads the article body of Wikipedia pages
type WikipediaAdapter struct {
	BaseAdapter
	skipClasses  []string
	stopSections []string
}

// NewWikipediaAdapter creates a new Wikipedia adapter
func NewWikipediaAdapter() *WikipediaAdapter {
	return &WikipediaAdapter{
		skipClasses: []string{
			"reference", "references", "reflist", "navbox", "infobox",
			"mw-editsection", "hatnote", "toc", "metadata", "sidebar",
			"thumbcaption", "mw-empty-elt",
		},
		stopSections: []string{
			"references", "notes", "see also", "external links",
			"further reading", "bibliography", "sources",
		},
	}
}

// Name returns the adapter name
func (a *WikipediaAdapter) Name() string {
	return "wikipedia"
}

// CanHandle checks if this is a Wikipedia URL
func (a *WikipediaAdapter) CanHandle(rawURL string, contentType string) bool {
	return strings.Contains(rawURL, "wikipedia.org")
}

// Content returns the article text node, without citations, navigation
// boxes and the trailing reference sections
func (a *WikipediaAdapter) Content(doc *html.Node) *html.Node {
	content := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && a.HasClass(n, "mw-parser-output")
	})
	if content == nil {
		content = a.FindFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && a.GetAttribute(n, "id") == "mw-content-text"
		})
	}
	if content == nil {
		content = doc
	}

	a.Prune(content, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, class := range a.skipClasses {
			if a.HasClass(n, class) {
				return true
			}
		}
		return false
	})
	a.truncateAtStopSection(content)

	return content
}

// truncateAtStopSection drops the first reference-style heading and
// everything after it at the same level
func (a *WikipediaAdapter) truncateAtStopSection(content *html.Node) {
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if !a.isStopHeading(c) {
			continue
		}
		for c != nil {
			next := c.NextSibling
			content.RemoveChild(c)
			c = next
		}
		return
	}
}

// isStopHeading matches an h2 (or the div.mw-heading wrapping one) whose
// text names a reference section
func (a *WikipediaAdapter) isStopHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	heading := n
	if n.Data == "div" && a.HasClass(n, "mw-heading") {
		heading = a.FindFirst(n, func(c *html.Node) bool {
			return c.Type == html.ElementNode && c.Data == "h2"
		})
	}
	if heading == nil || heading.Data != "h2" {
		return false
	}

	title := strings.ToLower(strings.TrimSpace(nodeText(heading)))
	for _, stop := range a.stopSections {
		if title == stop {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(nodeText(c))
	}
	return buf.String()
}
