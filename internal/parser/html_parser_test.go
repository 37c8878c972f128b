package parser

import (
	"testing"
)

func TestParseLinks(t *testing.T) {
	htmlContent := []byte(`
	<html>
	<head><title>Test Page</title></head>
	<body>
		<a href="/about">About</a>
		<a href="https://example.com/docs/start">Docs</a>
		<a href="page2.html">Relative</a>
		<a href="/pricing#plans">Pricing</a>
		<a href="mailto:info@example.com">Mail</a>
		<a href="tel:+123456789">Call</a>
		<a href="javascript:void(0)">JS</a>
		<a href="/about">Duplicate</a>
		<a href="https://other.org/page">External</a>
	</body>
	</html>`)

	p, err := NewHTMLParser("https://example.com/blog/post")
	if err != nil {
		t.Fatalf("NewHTMLParser() error: %v", err)
	}

	result, err := p.Parse(htmlContent)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	expected := []string{
		"https://example.com/about",
		"https://example.com/docs/start",
		"https://example.com/blog/page2.html",
		"https://example.com/pricing",
		"https://other.org/page",
	}

	if len(result.Links) != len(expected) {
		t.Fatalf("Expected %d links, got %d: %v", len(expected), len(result.Links), result.Links)
	}

	for i, want := range expected {
		if result.Links[i] != want {
			t.Errorf("Link %d: expected %s, got %s", i, want, result.Links[i])
		}
	}
}

func TestParseTitleCandidates(t *testing.T) {
	htmlContent := []byte(`
	<html>
	<head>
		<title>  Page Title  </title>
		<meta property="og:title" content="Social Title">
	</head>
	<body>
		<h1>First <em>Heading</em></h1>
		<h1>Second Heading</h1>
	</body>
	</html>`)

	p, err := NewHTMLParser("https://example.com")
	if err != nil {
		t.Fatalf("NewHTMLParser() error: %v", err)
	}

	result, err := p.Parse(htmlContent)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if result.Title != "Page Title" {
		t.Errorf("Expected title 'Page Title', got '%s'", result.Title)
	}
	if result.OGTitle != "Social Title" {
		t.Errorf("Expected og:title 'Social Title', got '%s'", result.OGTitle)
	}
	if result.FirstH1 != "First Heading" {
		t.Errorf("Expected first h1 'First Heading', got '%s'", result.FirstH1)
	}
}

func TestParseMalformedHTML(t *testing.T) {
	// x/net/html is tolerant; malformed input must still produce a result
	htmlContent := []byte(`<html><body><a href="/x">unclosed <div><p>text`)

	p, err := NewHTMLParser("https://example.com")
	if err != nil {
		t.Fatalf("NewHTMLParser() error: %v", err)
	}

	result, err := p.Parse(htmlContent)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(result.Links) != 1 || result.Links[0] != "https://example.com/x" {
		t.Errorf("Expected single link https://example.com/x, got %v", result.Links)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	p, err := NewHTMLParser("https://example.com")
	if err != nil {
		t.Fatalf("NewHTMLParser() error: %v", err)
	}

	result, err := p.Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(result.Links) != 0 {
		t.Errorf("Expected no links, got %v", result.Links)
	}
	if result.Title != "" {
		t.Errorf("Expected empty title, got '%s'", result.Title)
	}
}
