// Package parser provides HTML parsing for link discovery and title
// harvesting. It resolves hyperlink targets against the page URL and
// collects the metadata the extraction fallback chain needs.
package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser extracts links and title candidates from HTML
type HTMLParser struct {
	baseURL *url.URL
}

// ParseResult contains the parsed HTML data
type ParseResult struct {
	Title   string   // <title> text
	OGTitle string   // Open Graph title meta content
	FirstH1 string   // Text of the first <h1>
	Links   []string // Absolute link targets, fragments stripped, deduplicated
}

// NewHTMLParser creates a parser that resolves links against baseURL
func NewHTMLParser(baseURL string) (*HTMLParser, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &HTMLParser{baseURL: parsed}, nil
}

// Parse parses HTML content and extracts title candidates and all
// hyperlink targets. Targets are absolute-resolved against the base URL
// with their fragment removed; non-web schemes are dropped.
func (p *HTMLParser) Parse(htmlContent []byte) (*ParseResult, error) {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &ParseResult{}
	seen := make(map[string]bool)
	p.traverse(doc, result, seen)

	return result, nil
}

// traverse recursively walks the HTML tree
func (p *HTMLParser) traverse(n *html.Node, result *ParseResult, seen map[string]bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				result.Title = strings.TrimSpace(n.FirstChild.Data)
			}

		case "meta":
			p.parseMeta(n, result)

		case "h1":
			if result.FirstH1 == "" {
				result.FirstH1 = strings.TrimSpace(extractText(n))
			}

		case "a":
			p.parseAnchor(n, result, seen)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.traverse(c, result, seen)
	}
}

// parseMeta picks up the Open Graph title
func (p *HTMLParser) parseMeta(n *html.Node, result *ParseResult) {
	var property, content string

	for _, attr := range n.Attr {
		switch attr.Key {
		case "property":
			property = strings.ToLower(attr.Val)
		case "content":
			content = attr.Val
		}
	}

	if property == "og:title" && result.OGTitle == "" {
		result.OGTitle = strings.TrimSpace(content)
	}
}

// parseAnchor resolves one href into an absolute, fragment-free target
func (p *HTMLParser) parseAnchor(n *html.Node, result *ParseResult, seen map[string]bool) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = attr.Val
			break
		}
	}

	if href == "" {
		return
	}

	resolved, ok := p.resolveLink(href)
	if !ok || seen[resolved] {
		return
	}

	seen[resolved] = true
	result.Links = append(result.Links, resolved)
}

// resolveLink converts an href to an absolute URL with the fragment
// stripped. Non-http(s) schemes (mailto:, tel:, javascript:) and
// unparseable hrefs are rejected.
func (p *HTMLParser) resolveLink(href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := p.baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	resolved.Fragment = ""
	target := resolved.String()
	if target == "" {
		return "", false
	}

	return target, true
}

// extractText recursively extracts text content from a node
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := extractText(c); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " ")
}
