package models

import (
	"sort"
	"time"

	"mex/enums"

	"github.com/guregu/null/v6/zero"
	"gorm.io/gorm"
)

// Media is one playable item in the shape the downloader consumes:
// identity, descriptive fields and an ordered list of candidate formats.
// It is built once per extraction and never mutated afterwards.
type Media struct {
	ID                uint        `json:"-"`
	ContentID         string      `gorm:"not null;index" json:"content_id"`
	DisplayID         string      `json:"display_id,omitempty"`
	ContentURL        string      `gorm:"not null" json:"content_url"`
	ExtractorCodeName string      `gorm:"not null;index" json:"extractor_code_name"`
	Title             string      `json:"title"`
	AltTitle          zero.String `json:"alt_title"`
	Description       zero.String `json:"description"`
	Uploader          zero.String `json:"uploader"`
	Creator           zero.String `json:"creator"`
	Language          zero.String `json:"language"`

	// Duration is in seconds; fractional values are meaningful for
	// broadcaster metadata (e.g. 1741.52). Zero means unknown.
	Duration   float64 `json:"duration,omitempty"`
	Timestamp  int64   `json:"timestamp,omitempty"`
	UploadDate string  `json:"upload_date,omitempty"` // YYYYMMDD
	IsLive     bool    `json:"is_live,omitempty"`
	AgeLimit   int64   `json:"age_limit,omitempty"`

	Series        zero.String `json:"series"`
	Season        zero.String `json:"season"`
	SeasonNumber  int64       `json:"season_number,omitempty"`
	Episode       zero.String `json:"episode"`
	EpisodeNumber int64       `json:"episode_number,omitempty"`

	Artist      zero.String `json:"artist"`
	Album       zero.String `json:"album"`
	Track       zero.String `json:"track"`
	TrackNumber int64       `json:"track_number,omitempty"`

	Thumbnails  []string                      `gorm:"-" json:"thumbnails,omitempty"`
	Subtitles   map[string][]*SubtitleVariant `gorm:"-" json:"subtitles,omitempty"`
	HTTPHeaders map[string]string             `gorm:"-" json:"http_headers,omitempty"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Format *MediaFormat `json:"-"`

	Formats []*MediaFormat `gorm:"-" json:"formats"`
}

// MediaFormat is one downloadable rendition of a Media. URL must be an
// absolute, directly fetchable resource; relative references are resolved
// against the page URL before a format is added.
type MediaFormat struct {
	ID         uint             `json:"-"`
	MediaID    uint             `gorm:"index:idx_media_format,priority:1;not null" json:"-"`
	Type       enums.MediaType  `gorm:"not null" json:"type"`
	FormatID   string           `gorm:"not null;index" json:"format_id"`
	URL        string           `gorm:"not null" json:"url"`
	Ext        string           `json:"ext,omitempty"`
	VideoCodec enums.MediaCodec `json:"video_codec,omitempty"`
	AudioCodec enums.MediaCodec `json:"audio_codec,omitempty"`
	Width      int64            `json:"width,omitempty"`
	Height     int64            `json:"height,omitempty"`
	Bitrate    int64            `json:"bitrate,omitempty"`
	IsDefault  bool             `gorm:"default:false" json:"is_default,omitempty"`

	Headers map[string]string `gorm:"-" json:"headers,omitempty"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Media *Media `gorm:"foreignKey:MediaID" json:"-"`
}

func (media *Media) SetDescription(description string) {
	if len(description) == 0 {
		return
	}
	media.Description = zero.StringFrom(description)
}

func (media *Media) AddFormat(format *MediaFormat) {
	media.Formats = append(media.Formats, format)
}

func (media *Media) AddThumbnail(url string) {
	if url == "" {
		return
	}
	media.Thumbnails = append(media.Thumbnails, url)
}

func (media *Media) AddSubtitle(lang string, variant *SubtitleVariant) {
	if variant == nil {
		return
	}
	if media.Subtitles == nil {
		media.Subtitles = make(map[string][]*SubtitleVariant)
	}
	media.Subtitles[lang] = append(media.Subtitles[lang], variant)
}

func (media *Media) Thumbnail() string {
	if len(media.Thumbnails) == 0 {
		return ""
	}
	return media.Thumbnails[0]
}

// SortFormats orders the format list by preference: higher resolution
// first, then higher bitrate, then codec priority, with the format id as
// the final tie-break. The ordering is total, so sorting an unchanged
// list again yields the identical sequence.
func (media *Media) SortFormats() {
	SortFormats(media.Formats)
}

func SortFormats(formats []*MediaFormat) {
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := formats[i], formats[j]
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		if a.Bitrate != b.Bitrate {
			return a.Bitrate > b.Bitrate
		}
		if pa, pb := codecPriority(a.VideoCodec), codecPriority(b.VideoCodec); pa != pb {
			return pa < pb
		}
		return a.FormatID < b.FormatID
	})
}

// GetDefaultFormat returns the preferred format, marking it as default.
func (media *Media) GetDefaultFormat() *MediaFormat {
	if len(media.Formats) == 0 {
		return nil
	}
	sorted := make([]*MediaFormat, len(media.Formats))
	copy(sorted, media.Formats)
	SortFormats(sorted)
	best := sorted[0]
	best.IsDefault = true
	return best
}

func (media *Media) GetFormat(formatID string) *MediaFormat {
	for _, format := range media.Formats {
		if format.FormatID == formatID {
			return format
		}
	}
	return nil
}

func (media *Media) HasVideo() bool {
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeVideo {
			return true
		}
	}
	return false
}

func (media *Media) HasAudio() bool {
	for _, format := range media.Formats {
		if format.Type == enums.MediaTypeAudio {
			return true
		}
	}
	return false
}

func codecPriority(codec enums.MediaCodec) int64 {
	priority := map[enums.MediaCodec]int64{
		enums.MediaCodecAVC:  1,
		enums.MediaCodecHEVC: 2,
		enums.MediaCodecVP9:  3,
		enums.MediaCodecVP8:  4,
		enums.MediaCodecAV1:  5,
	}
	if p, ok := priority[codec]; ok {
		return p
	}
	return 6
}
