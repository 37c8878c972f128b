package enrich

import (
	"strings"
	"testing"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		wordCount int
		expected  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{299, 1},
		{300, 2},
		{400, 2},
		{1000, 5},
		{2500, 13},
	}

	for _, tt := range tests {
		if got := readingTime(tt.wordCount); got != tt.expected {
			t.Errorf("readingTime(%d) = %d, want %d", tt.wordCount, got, tt.expected)
		}
	}
}

func TestDetectContentType(t *testing.T) {
	longBody := strings.Repeat("word ", 150)

	tests := []struct {
		name     string
		url      string
		body     string
		expected string
	}{
		{"docs segment", "https://x.com/docs/start", longBody, "doc_page"},
		{"tutorial segment", "https://x.com/tutorial/intro", "", "doc_page"},
		{"blog segment", "https://x.com/blog/p1", "", "article"},
		{"news segment", "https://x.com/news/today", "", "article"},
		{"product segment", "https://x.com/product/42", "", "product_page"},
		{"shop segment", "https://x.com/shop/widget", "", "product_page"},
		{"docs beats blog terms in body", "https://x.com/docs/start", "blog post product " + longBody, "doc_page"},
		{"bare root", "https://example.com/", "", "homepage"},
		{"bare root no slash", "https://example.com", "", "homepage"},
		{"deep path long body", "https://x.dev/misc/deep/item-one", longBody, "article"},
		{"deep path short body", "https://x.dev/misc/deep/item-one", "short", "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.url, tt.body); got != tt.expected {
				t.Errorf("detectContentType(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	e := New()

	english := "The quick brown fox jumps over the lazy dog and runs to the " +
		"river for a drink of water, but the dog is not amused by the game " +
		"and has been waiting at the gate with the other animals."
	spanish := "El perro y la casa son de los vecinos, en una calle con las " +
		"flores para el mercado, y el agua es para los campos de la tierra " +
		"donde las familias viven con los animales."
	german := "Der Hund und die Katze sind in dem Haus, das ein rotes Dach " +
		"hat, mit einer Tür für die Gäste von der Stadt auf dem Berg, und " +
		"die Kinder sind mit der Mutter auf dem Weg."

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"english", english, "en"},
		{"spanish", spanish, "es"},
		{"german", german, "de"},
		{"short text defaults to english", "el la los las un una", "en"},
		{"empty defaults to english", "", "en"},
		{"no function words defaults to english", strings.Repeat("xylophone zugzwang qwerty ", 10), "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.detectLanguage(tt.text); got != tt.expected {
				t.Errorf("detectLanguage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	e := New()

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"go style function", "function handleClick() { return true }", true},
		{"python def", "def process_data(items):", true},
		{"class declaration", "class OrderService", true},
		{"import statement", "import collections", true},
		{"fenced block", "Run this:\n```\nls -la\n```", true},
		{"inline code", "Set the `timeout` option to 10.", true},
		{"script tag", "<script src=\"app.js\">", true},
		{"prose only", "The meeting covered quarterly results and planning.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.hasCode(tt.text); got != tt.expected {
				t.Errorf("hasCode(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestEnrichCountsAndFlags(t *testing.T) {
	e := New()

	body := strings.TrimSpace(strings.Repeat("token ", 150))
	meta := e.Enrich("https://x.dev/misc/long/page", "Title", body)

	if meta.WordCount != 150 {
		t.Errorf("Expected word count 150, got %d", meta.WordCount)
	}
	if meta.CharCount != len(body) {
		t.Errorf("Expected char count %d, got %d", len(body), meta.CharCount)
	}
	if !meta.IsSubstantial {
		t.Errorf("150 words must be substantial")
	}
	if meta.IsLongForm {
		t.Errorf("150 words must not be long form")
	}
	if meta.ReadingTimeMinutes != 1 {
		t.Errorf("Expected reading time 1, got %d", meta.ReadingTimeMinutes)
	}
}

func TestEnrichCharCountIsRunes(t *testing.T) {
	e := New()

	meta := e.Enrich("https://x.dev/a/b", "T", "héllo wörld")
	if meta.CharCount != 11 {
		t.Errorf("Expected 11 runes, got %d", meta.CharCount)
	}
}

func TestEnrichLongForm(t *testing.T) {
	e := New()

	body := strings.TrimSpace(strings.Repeat("token ", 1000))
	meta := e.Enrich("https://x.dev/misc/long/page", "Title", body)

	if !meta.IsLongForm || !meta.IsSubstantial {
		t.Errorf("1000 words must be substantial and long form")
	}
	if meta.ReadingTimeMinutes != 5 {
		t.Errorf("Expected reading time 5, got %d", meta.ReadingTimeMinutes)
	}
}

func TestEnrichDeterministic(t *testing.T) {
	e := New()

	first := e.Enrich("https://x.com/blog/p1", "Post", "The body text of the post is here and the words repeat the the the.")
	second := e.Enrich("https://x.com/blog/p1", "Post", "The body text of the post is here and the words repeat the the the.")

	if first != second {
		t.Errorf("Enrich must be deterministic: %+v != %+v", first, second)
	}
}
