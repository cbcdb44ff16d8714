package adapters

import "golang.org/x/net/html"

// GenericAdapter is the fallback adapter for unknown domains. It prefers
// the page's <article> or <main> element and otherwise reads the body.
type GenericAdapter struct {
	BaseAdapter
}

// NewGenericAdapter creates a new generic adapter
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// Name returns the adapter name
func (a *GenericAdapter) Name() string {
	return "generic"
}

// CanHandle always returns true (fallback adapter)
func (a *GenericAdapter) CanHandle(url string, contentType string) bool {
	return true
}

// Content returns the main content node with page chrome removed
func (a *GenericAdapter) Content(doc *html.Node) *html.Node {
	content := a.FindFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "article"
	})
	if content == nil {
		content = a.FindFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode &&
				(n.Data == "main" || a.GetAttribute(n, "role") == "main")
		})
	}
	if content == nil {
		content = a.FindFirst(doc, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "body"
		})
	}
	if content == nil {
		content = doc
	}

	a.Prune(content, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		switch n.Data {
		case "nav", "header", "footer", "aside", "form":
			return true
		}
		return false
	})
	return content
}
