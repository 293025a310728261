package appletrailers

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

var json = sonic.ConfigFastest

// trailerInfo is the JSON blob embedded in each list item's
// iTunes.playURL(...) click handler.
type trailerInfo struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Posted  string  `json:"posted"`
	Runtime string  `json:"runtime"`
	Width   flexInt `json:"width"`
	Height  flexInt `json:"height"`
}

// trailerSettings is the per-trailer JSON under includes/settings/.
type trailerSettings struct {
	Metadata struct {
		Sizes []trailerSize `json:"sizes"`
	} `json:"metadata"`
}

type trailerSize struct {
	Src    string  `json:"src"`
	Type   string  `json:"type"`
	Width  flexInt `json:"width"`
	Height flexInt `json:"height"`
}

type sectionEntry struct {
	Location string `json:"location"`
	Title    string `json:"title"`
}

// flexInt tolerates numeric fields the site serves either as numbers or
// as quoted strings. Values that parse to nothing count as unknown.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(parsed)
	return nil
}
