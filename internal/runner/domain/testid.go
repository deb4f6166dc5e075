package domain

import (
	"net/url"
	"strings"
	"unicode"
)

// ResolveTestID sanitizes a raw identifier taken from a shared link. Links get
// copied through chats and spreadsheets, so stray whitespace anywhere in the
// value is stripped, not just at the edges.
func ResolveTestID(raw string) (string, error) {
	id := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if id == "" {
		return "", ErrMissingTestID
	}
	return id, nil
}

// TestIDFromLink accepts either a bare identifier or a full share link and
// resolves the test identifier from it. For links, the identifier is read from
// the "id" query parameter.
func TestIDFromLink(arg string) (string, error) {
	trimmed := strings.TrimSpace(arg)
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return "", ErrMissingTestID
		}
		return ResolveTestID(u.Query().Get("id"))
	}
	return ResolveTestID(trimmed)
}
