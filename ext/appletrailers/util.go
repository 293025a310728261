package appletrailers

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	playURLRegex     = regexp.MustCompile(`iTunes\.playURL\((.*?)\);`)
	scriptBlockRegex = regexp.MustCompile(`(?s)<script[^<]*?>.*?</script>`)
	imgTagRegex      = regexp.MustCompile(`<img ([^<]*?)/?>`)
	titleSlugRegex   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	sizeSrcRegex     = regexp.MustCompile(`_(\d*p.mov)`)
)

// fixPlaylistHTML repairs the itunes.inc include before parsing: script
// blocks are dropped, img tags self-closed and the raw single quotes the
// site ships inside iTunes.playURL(...) JSON re-escaped as entities. The
// result is wrapped in a single root element.
func fixPlaylistHTML(data []byte) []byte {
	data = scriptBlockRegex.ReplaceAll(data, nil)
	data = imgTagRegex.ReplaceAll(data, []byte("<img $1/>"))
	data = playURLRegex.ReplaceAllFunc(data, func(call []byte) []byte {
		inner := playURLRegex.FindSubmatch(call)[1]
		escaped := bytes.ReplaceAll(inner, []byte(`'`), []byte("&#39;"))
		fixed := make([]byte, 0, len(escaped)+16)
		fixed = append(fixed, "iTunes.playURL("...)
		fixed = append(fixed, escaped...)
		fixed = append(fixed, ");"...)
		return fixed
	})
	wrapped := make([]byte, 0, len(data)+13)
	wrapped = append(wrapped, "<html>"...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, "</html>"...)
	return wrapped
}

// trailerSettingsID derives the settings file name from the first source
// URL: the last path segment up to its final underscore, lowercased.
// A segment without an underscore yields an empty id, which makes the
// settings fetch fail and extraction fall back to the direct URL.
func trailerSettingsID(firstURL string) string {
	segment := firstURL
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	idx := strings.LastIndex(segment, "_")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(segment[:idx])
}

// directDownloadURL rebuilds the downloadable source from the preview URL
// by inserting an "h" after every underscore, which is how the site names
// the full-size files next to their previews.
func directDownloadURL(firstURL string) string {
	return strings.Join(strings.Split(firstURL, "_"), "_h")
}

func slugifyTitle(movie string, title string) string {
	return movie + "-" + strings.ToLower(titleSlugRegex.ReplaceAllString(title, ""))
}
