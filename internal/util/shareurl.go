package util

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeOrigin trims a configured origin down to scheme://host[:port].
// Paths, queries, and trailing slashes are discarded.
func NormalizeOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(origin, "/")
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

// ShareURL builds the public URL for a share link: <origin>/share/<linkID>.
func ShareURL(origin, linkID string) string {
	return fmt.Sprintf("%s/share/%s", NormalizeOrigin(origin), linkID)
}
