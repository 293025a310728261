package rai

import (
	"strings"

	"github.com/bytedance/sonic"
)

var json = sonic.ConfigFastest

// playMedia is the per-content JSON served next to each RaiPlay page
// (same path with a .json extension).
type playMedia struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Subtitle      string            `json:"subtitle"`
	Description   string            `json:"description"`
	Channel       string            `json:"channel"`
	Editor        string            `json:"editor"`
	DatePublished string            `json:"date_published"`
	TimePublished string            `json:"time_published"`
	Season        flexString        `json:"season"`
	Episode       flexString        `json:"episode"`
	EpisodeTitle  string            `json:"episode_title"`
	Images        map[string]string `json:"images"`
	Video         playVideo         `json:"video"`
	ProgramInfo   struct {
		Name string `json:"name"`
	} `json:"program_info"`
}

type playVideo struct {
	ContentURL string `json:"content_url"`
	Duration   string `json:"duration"`
}

// programData describes a RaiPlay program page: the blocks/sets tree
// points at the JSON documents listing the actual episodes.
type programData struct {
	Name   string `json:"name"`
	Blocks []struct {
		Sets []struct {
			ID string `json:"id"`
		} `json:"sets"`
	} `json:"blocks"`
	ProgramInfo struct {
		Description string `json:"description"`
	} `json:"program_info"`
}

type contentSet struct {
	Items []struct {
		PathID string `json:"path_id"`
	} `json:"items"`
}

// flexString tolerates fields the site serves either as strings or as
// bare numbers (season and episode flip between the two).
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		value = ""
	}
	*f = flexString(value)
	return nil
}
