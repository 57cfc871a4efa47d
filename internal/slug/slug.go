// Package slug derives filesystem- and URL-safe identifiers from titles.
package slug

import "strings"

// maxLen caps generated slugs so filenames stay manageable.
const maxLen = 80

// Fallback is returned when normalization leaves nothing usable.
const Fallback = "untitled"

// Make normalizes title into a slug: lowercased, restricted to [a-z0-9-],
// whitespace runs collapsed to single hyphens, hyphen runs collapsed,
// leading/trailing hyphens trimmed, truncated to 80 characters. An empty
// result yields the literal "untitled".
//
// Make is pure and deterministic; uniqueness against existing slugs is the
// caller's job.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		var out byte
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = byte(r)
		case r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			out = '-'
		default:
			// Dropped entirely, same as the strip-then-collapse rules.
			continue
		}
		if out == '-' {
			if lastHyphen || b.Len() == 0 {
				continue
			}
			lastHyphen = true
		} else {
			lastHyphen = false
		}
		b.WriteByte(out)
	}

	s = strings.Trim(b.String(), "-")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}
	if s == "" {
		return Fallback
	}
	return s
}
