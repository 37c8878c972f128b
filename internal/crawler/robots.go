package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/temoto/robotstxt"
)

// RobotsPolicy holds the robots.txt rules for the crawl scope. The
// policy is fetched once at crawler construction and reused for every
// candidate URL. A nil policy allows everything.
type RobotsPolicy struct {
	group *robotstxt.Group
}

// LoadRobotsPolicy fetches and parses robots.txt for the seed's host.
// Fetch and parse failures degrade to a nil policy: crawling proceeds
// as if everything were allowed.
func LoadRobotsPolicy(ctx context.Context, client *HTTPClient, base *url.URL, userAgent string) *RobotsPolicy {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", base.Scheme, base.Host)

	resp, err := client.Get(ctx, robotsURL)
	if err != nil {
		slog.Debug("Could not fetch robots.txt", "url", robotsURL, "error", err)
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, resp.Body)
	if err != nil {
		slog.Debug("Could not parse robots.txt", "url", robotsURL, "error", err)
		return nil
	}

	return &RobotsPolicy{group: data.FindGroup(userAgent)}
}

// Allowed reports whether the policy permits fetching the URL
func (p *RobotsPolicy) Allowed(u *url.URL) bool {
	if p == nil || p.group == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return p.group.Test(path)
}
