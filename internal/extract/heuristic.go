package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"sitecorpus/internal/parser"
)

// heuristicStrategy strips boilerplate from the full document and reads
// the first qualifying content container. It always succeeds, possibly
// with an empty body, so it terminates the strategy chain.
type heuristicStrategy struct{}

func (heuristicStrategy) name() string { return "heuristic" }

// Tags removed outright before reading text
var strippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// Structural tags treated as boilerplate
var boilerplateTags = map[string]bool{
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
}

// Class/id tokens marking boilerplate containers
var boilerplateTokens = map[string]bool{
	"nav":             true,
	"navigation":      true,
	"navbar":          true,
	"menu":            true,
	"header":          true,
	"footer":          true,
	"sidebar":         true,
	"advertisement":   true,
	"ad":              true,
	"ads":             true,
	"social-share":    true,
	"share-buttons":   true,
	"comments":        true,
	"comment-section": true,
	"breadcrumb":      true,
	"breadcrumbs":     true,
}

// ARIA roles marking boilerplate regions
var boilerplateRoles = map[string]bool{
	"navigation":    true,
	"banner":        true,
	"contentinfo":   true,
	"complementary": true,
}

// Class tokens identifying likely main-content containers, in priority order
var contentClassTokens = []string{
	"content",
	"main-content",
	"post-content",
	"entry-content",
	"article-content",
}

// Element ids identifying likely main-content containers, in priority order
var contentIDs = []string{"content", "main", "article"}

func (heuristicStrategy) attempt(htmlContent, pageURL string) (*Content, bool) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return &Content{Title: titleFromURL(pageURL), BodyText: ""}, true
	}

	removeNodes(doc, isStrippedNode)
	removeNodes(doc, isBoilerplateNode)

	return &Content{
		Title:    extractTitle(htmlContent, pageURL),
		BodyText: extractMainContent(doc),
	}, true
}

// extractTitle walks the fallback chain: <title>, og:title, first <h1>,
// a slug derived from the URL path, then the literal "Untitled".
func extractTitle(htmlContent, pageURL string) string {
	p, err := parser.NewHTMLParser(pageURL)
	if err == nil {
		if meta, err := p.Parse([]byte(htmlContent)); err == nil {
			if meta.Title != "" {
				return meta.Title
			}
			if meta.OGTitle != "" {
				return meta.OGTitle
			}
			if meta.FirstH1 != "" {
				return meta.FirstH1
			}
		}
	}
	return titleFromURL(pageURL)
}

// titleFromURL derives a slug from the URL path
func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "Untitled"
	}

	slug := strings.ReplaceAll(strings.Trim(u.Path, "/"), "/", " - ")
	if slug == "" {
		return "Untitled"
	}
	return slug
}

// extractMainContent tries the ordered content selectors, then the
// cleaned <body>, and returns "" when nothing has enough text.
func extractMainContent(doc *html.Node) string {
	candidates := contentSelectors()
	for _, matches := range candidates {
		node := findFirst(doc, matches)
		if node == nil {
			continue
		}
		if text := flattenText(node); len(text) > selectorMinChars {
			return text
		}
	}

	body := findFirst(doc, func(n *html.Node) bool { return n.Data == "body" })
	if body != nil {
		if text := flattenText(body); len(text) > bodyMinChars {
			return text
		}
	}

	return ""
}

// contentSelectors returns the main-content matchers in priority order
func contentSelectors() []func(*html.Node) bool {
	selectors := []func(*html.Node) bool{
		func(n *html.Node) bool { return n.Data == "main" },
		func(n *html.Node) bool { return n.Data == "article" },
		func(n *html.Node) bool { return attrValue(n, "role") == "main" },
	}

	for _, token := range contentClassTokens {
		token := token
		selectors = append(selectors, func(n *html.Node) bool {
			return hasToken(attrValue(n, "class"), token)
		})
	}

	for _, id := range contentIDs {
		id := id
		selectors = append(selectors, func(n *html.Node) bool {
			return attrValue(n, "id") == id
		})
	}

	return selectors
}

func isStrippedNode(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	return n.Type == html.ElementNode && strippedTags[n.Data]
}

func isBoilerplateNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	if boilerplateTags[n.Data] {
		return true
	}

	if boilerplateRoles[attrValue(n, "role")] {
		return true
	}

	for _, token := range strings.Fields(attrValue(n, "class")) {
		if boilerplateTokens[strings.ToLower(token)] {
			return true
		}
	}

	return false
}

// removeNodes unlinks every node in the subtree matching the predicate
func removeNodes(n *html.Node, matches func(*html.Node) bool) {
	var doomed []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if matches(c) {
			doomed = append(doomed, c)
		} else {
			removeNodes(c, matches)
		}
	}
	for _, c := range doomed {
		n.RemoveChild(c)
	}
}

// findFirst returns the first element node in document order matching
// the predicate
func findFirst(n *html.Node, matches func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && matches(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, matches); found != nil {
			return found
		}
	}
	return nil
}

// flattenText joins the trimmed text nodes of a subtree with spaces
func flattenText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// attrValue returns the value of the named attribute, or ""
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasToken reports whether the space-separated token list contains token
func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
