package models

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the invariants the page relies on when rendering.
func (c ClubContent) Validate() error {
	if strings.TrimSpace(c.ClubName) == "" {
		return fmt.Errorf("clubName is required")
	}
	for _, link := range []struct{ field, raw string }{
		{"openChatUrl", c.OpenChatURL},
		{"instagramUrl", c.InstagramURL},
		{"mapEmbedUrl", c.MapEmbedURL},
	} {
		if link.raw == "" {
			continue
		}
		u, err := url.Parse(link.raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL", link.field)
		}
	}

	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		if strings.TrimSpace(r.ID) == "" || strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("rules[%d] needs an id and a title", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
	}
	for i, s := range c.Signals {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("signals[%d] needs a title", i)
		}
	}
	return nil
}
