package crawler

import "strings"

// Substrings marking non-content URLs: auth pages, search endpoints,
// API and static-asset paths, binary file extensions, and non-HTTP
// link schemes. Matched case-insensitively against the full URL.
var skipPatterns = []string{
	"/login", "/signup", "/register", "/logout",
	"/search?", "/?search=", "/results?",
	"/api/", "/ajax/", "/static/", "/assets/",
	".pdf", ".zip", ".jpg", ".png", ".gif", ".svg",
	"#", "mailto:", "tel:", "javascript:",
}

// matchesSkipPattern reports whether the URL contains a non-content marker
func matchesSkipPattern(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range skipPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}
