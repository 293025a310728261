package models

import (
	"net/http"
	"regexp"

	"mex/enums"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Extractor struct {
	Name       string
	CodeName   string
	Type       enums.ExtractorType
	Category   enums.ExtractorCategory
	URLPattern *regexp.Regexp
	Host       []string
	IsRedirect bool
	Client     HTTPClient

	Run func(*ExtractionContext) (*ExtractorResponse, error)
}

// ExtractorResponse carries exactly one of: a list of resolved media, a
// playlist, or a redirect URL to re-dispatch.
type ExtractorResponse struct {
	MediaList []*Media
	Playlist  *Playlist
	URL       string
}

func (extractor *Extractor) NewMedia(
	contentID string,
	contentURL string,
) *Media {
	return &Media{
		ContentID:         contentID,
		ContentURL:        contentURL,
		ExtractorCodeName: extractor.CodeName,
	}
}

func (extractor *Extractor) NewPlaylist(playlistID string) *Playlist {
	return &Playlist{
		ID: playlistID,
	}
}
