package adapters

import (
	"fmt"
	"strings"

	"github.com/ppiankov/lovekey/internal/extract"
	"golang.org/x/net/html"
)

// Adapter selects the prose of a page, leaving out navigation, citations
// and other site furniture that would skew marker counts
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given URL/content
	CanHandle(url string, contentType string) bool

	// Content returns the node holding the page's main text
	Content(doc *html.Node) *html.Node
}

// Registry manages domain adapters
type Registry struct {
	adapters []Adapter
	generic  Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry() *Registry {
	registry := &Registry{
		adapters: make([]Adapter, 0),
	}

	registry.Register(NewWikipediaAdapter())

	// Generic adapter is the fallback
	registry.generic = NewGenericAdapter()

	return registry
}

// Register registers a new adapter
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// FindAdapter finds the best adapter for the given URL and content type
func (r *Registry) FindAdapter(url string, contentType string) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(url, contentType) {
			return adapter
		}
	}
	return r.generic
}

// Extract parses an HTML page and returns its title and main text, along
// with the name of the adapter that selected it
func (r *Registry) Extract(url, contentType, htmlContent string) (*extract.Page, string, error) {
	doc, err := extract.ParseHTML(htmlContent)
	if err != nil {
		return nil, "", fmt.Errorf("parse html: %w", err)
	}

	adapter := r.FindAdapter(url, contentType)
	page := &extract.Page{
		Title: extract.Title(doc),
		Text:  extract.NodeText(adapter.Content(doc)),
	}
	return page, adapter.Name(), nil
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct{}

// HasClass checks if a node has a specific CSS class
func (b *BaseAdapter) HasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, class := range strings.Fields(attr.Val) {
				if class == className {
					return true
				}
			}
		}
	}
	return false
}

// GetAttribute gets an attribute value from a node
func (b *BaseAdapter) GetAttribute(n *html.Node, attrKey string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrKey {
			return attr.Val
		}
	}
	return ""
}

// FindFirst finds the first node matching a predicate, depth first
func (b *BaseAdapter) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// Prune detaches every descendant of n matching predicate
func (b *BaseAdapter) Prune(n *html.Node, predicate func(*html.Node) bool) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if predicate(c) {
			n.RemoveChild(c)
			continue
		}
		b.Prune(c, predicate)
	}
}
