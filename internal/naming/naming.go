// Package naming builds deterministic, filesystem-safe destination names
// from resolved VOD metadata.
package naming

import "strings"

// maxGeneratedBytes caps the generated filename. 200 bytes stays under
// common 255-byte filesystem limits while leaving room for the directory
// prefix. Only the title is truncated to fit; the date, channel and ID
// components always survive intact.
const maxGeneratedBytes = 200

// Sanitize maps every character outside [A-Za-z0-9 _-] to '_'. The result
// is pure ASCII: each multi-byte rune collapses to a single underscore.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Filename builds "<date>_<channel>_<title>_<id>.<ext>" with the channel
// and title sanitized. Pure function: identical inputs always yield the
// identical name.
func Filename(uploadDate, channel, title, targetID, ext string) string {
	channel = Sanitize(channel)
	title = Sanitize(title)

	// 3 separators plus the extension dot.
	fixed := len(uploadDate) + len(channel) + len(targetID) + len(ext) + 4
	if over := fixed + len(title) - maxGeneratedBytes; over > 0 {
		keep := len(title) - over
		if keep < 0 {
			keep = 0
		}
		// Safe to cut on a byte boundary: sanitized titles are ASCII.
		title = title[:keep]
	}
	return uploadDate + "_" + channel + "_" + title + "_" + targetID + "." + ext
}
