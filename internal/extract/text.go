package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Page is the readable part of an HTML document
type Page struct {
	Title string
	Text  string
}

// ParseHTML parses an HTML document into a node tree
func ParseHTML(htmlContent string) (*html.Node, error) {
	return html.Parse(strings.NewReader(htmlContent))
}

// ParsePage extracts the title and visible text of an HTML document
func ParsePage(htmlContent string) (*Page, error) {
	doc, err := ParseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	return &Page{
		Title: Title(doc),
		Text:  NodeText(doc),
	}, nil
}

// Title returns the document's <title>, or "" when it has none
func Title(doc *html.Node) string {
	return findTitle(doc)
}

// NodeText returns the visible text below n
func NodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	return visibleText(n)
}

// VisibleText parses an HTML document and returns its readable text,
// skipping scripts, styles and other non-rendered elements
func VisibleText(htmlContent string) (string, error) {
	page, err := ParsePage(htmlContent)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template", "svg":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}

// IsHTML reports whether a Content-Type header (or sniffed type) denotes HTML
func IsHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
