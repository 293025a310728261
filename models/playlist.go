package models

import "github.com/guregu/null/v6/zero"

// Playlist wraps an ordered sequence of entries produced by one URL:
// a movie's trailers, a program's episodes, a radio playlist's tracks.
// Entry order is the site's natural ordering.
type Playlist struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description zero.String `json:"description"`

	Entries []*PlaylistEntry `json:"entries"`
}

// PlaylistEntry holds exactly one of: a resolved Media, a nested
// Playlist, or a deferred URL the host re-dispatches through the
// registry.
type PlaylistEntry struct {
	Media    *Media    `json:"media,omitempty"`
	Playlist *Playlist `json:"playlist,omitempty"`
	URL      string    `json:"url,omitempty"`
}

func (playlist *Playlist) AddMedia(media *Media) {
	if media == nil {
		return
	}
	playlist.Entries = append(playlist.Entries, &PlaylistEntry{Media: media})
}

func (playlist *Playlist) AddURL(url string) {
	if url == "" {
		return
	}
	playlist.Entries = append(playlist.Entries, &PlaylistEntry{URL: url})
}

func (playlist *Playlist) AddPlaylist(child *Playlist) {
	if child == nil {
		return
	}
	playlist.Entries = append(playlist.Entries, &PlaylistEntry{Playlist: child})
}

func (playlist *Playlist) SetDescription(description string) {
	if len(description) == 0 {
		return
	}
	playlist.Description = zero.StringFrom(description)
}

// MediaEntries returns the resolved media items in playlist order,
// skipping deferred and nested entries.
func (playlist *Playlist) MediaEntries() []*Media {
	mediaList := make([]*Media, 0, len(playlist.Entries))
	for _, entry := range playlist.Entries {
		if entry.Media != nil {
			mediaList = append(mediaList, entry.Media)
		}
	}
	return mediaList
}
