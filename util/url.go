package util

import (
	"net/url"
	"regexp"
	"strings"
)

var brokenAmpRegex = regexp.MustCompile(`&(?:amp;|lt;|gt;|apos;|quot;|#x?[0-9a-fA-F]+;)?`)

// FixAmpersands escapes bare ampersands so the payload becomes parseable
// XML. Ampersands already part of an entity are left alone.
func FixAmpersands(data []byte) []byte {
	return brokenAmpRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		if len(match) == 1 {
			return []byte("&amp;")
		}
		return match
	})
}

// ResolveURL joins ref against base the way a browser would, returning ref
// untouched when either side does not parse.
func ResolveURL(base string, ref string) string {
	if ref == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// UpdateURLQuery merges params into the URL's query string, keeping any
// existing parameters.
func UpdateURLQuery(rawURL string, params map[string]string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

var extGuessRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// DetermineExt guesses a file extension from the URL path, falling back to
// defaultExt when the last path segment has none.
func DetermineExt(rawURL string, defaultExt string) string {
	stripped := rawURL
	if idx := strings.IndexAny(stripped, "?#"); idx >= 0 {
		stripped = stripped[:idx]
	}
	idx := strings.LastIndex(stripped, ".")
	if idx < 0 {
		return defaultExt
	}
	guess := stripped[idx+1:]
	if !extGuessRegex.MatchString(guess) {
		return defaultExt
	}
	return guess
}

// FixURL reverts HTML entity escaping on URLs scraped out of markup.
func FixURL(url string) string {
	return strings.ReplaceAll(url, "&amp;", "&")
}
