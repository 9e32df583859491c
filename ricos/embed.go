package ricos

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	youtubeIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoIDRe   = regexp.MustCompile(`^\d+$`)
)

// CanonicalVideoURL maps the many YouTube and Vimeo embed URL variants to
// a single canonical watch URL. It returns false for anything else, in
// which case the embed is kept as raw HTML.
func CanonicalVideoURL(src string) (string, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", false
	}
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	u, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	switch host {
	case "youtube.com", "youtube-nocookie.com", "m.youtube.com":
		if id := u.Query().Get("v"); youtubeIDRe.MatchString(id) {
			return "https://www.youtube.com/watch?v=" + id, true
		}
		if id, ok := pathSegmentAfter(u.Path, "embed"); ok && youtubeIDRe.MatchString(id) {
			return "https://www.youtube.com/watch?v=" + id, true
		}
		if id, ok := pathSegmentAfter(u.Path, "shorts"); ok && youtubeIDRe.MatchString(id) {
			return "https://www.youtube.com/watch?v=" + id, true
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); youtubeIDRe.MatchString(id) {
			return "https://www.youtube.com/watch?v=" + id, true
		}
	case "vimeo.com":
		if id := strings.Trim(u.Path, "/"); vimeoIDRe.MatchString(id) {
			return "https://vimeo.com/" + id, true
		}
	case "player.vimeo.com":
		if id, ok := pathSegmentAfter(u.Path, "video"); ok && vimeoIDRe.MatchString(id) {
			return "https://vimeo.com/" + id, true
		}
	}
	return "", false
}

// pathSegmentAfter returns the path segment that follows marker.
func pathSegmentAfter(path, marker string) (string, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segs {
		if seg == marker && i+1 < len(segs) {
			return segs[i+1], true
		}
	}
	return "", false
}
