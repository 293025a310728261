package models

import (
	"testing"

	"mex/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFormats() []*MediaFormat {
	return []*MediaFormat{
		{FormatID: "hls-1000", Type: enums.MediaTypeVideo, Height: 720, Width: 1280, Bitrate: 1000000, VideoCodec: enums.MediaCodecAVC},
		{FormatID: "hls-800", Type: enums.MediaTypeVideo, Height: 1080, Width: 1920, Bitrate: 800000, VideoCodec: enums.MediaCodecHEVC},
		{FormatID: "hls-2000", Type: enums.MediaTypeVideo, Height: 720, Width: 1280, Bitrate: 2000000, VideoCodec: enums.MediaCodecAVC},
		{FormatID: "hls-audio", Type: enums.MediaTypeAudio, AudioCodec: enums.MediaCodecAAC},
	}
}

func formatIDs(formats []*MediaFormat) []string {
	ids := make([]string, 0, len(formats))
	for _, format := range formats {
		ids = append(ids, format.FormatID)
	}
	return ids
}

func TestSortFormats(t *testing.T) {
	media := &Media{Formats: sampleFormats()}
	media.SortFormats()
	assert.Equal(t,
		[]string{"hls-800", "hls-2000", "hls-1000", "hls-audio"},
		formatIDs(media.Formats),
	)
}

func TestSortFormatsDeterministic(t *testing.T) {
	forward := sampleFormats()
	backward := sampleFormats()
	for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
		backward[i], backward[j] = backward[j], backward[i]
	}

	SortFormats(forward)
	SortFormats(backward)
	assert.Equal(t, formatIDs(forward), formatIDs(backward))

	// sorting a sorted list again must not reshuffle anything
	again := formatIDs(forward)
	SortFormats(forward)
	assert.Equal(t, again, formatIDs(forward))
}

func TestSortFormatsCodecPriority(t *testing.T) {
	formats := []*MediaFormat{
		{FormatID: "c", Height: 720, VideoCodec: ""},
		{FormatID: "b", Height: 720, VideoCodec: enums.MediaCodecHEVC},
		{FormatID: "a", Height: 720, VideoCodec: enums.MediaCodecAVC},
	}
	SortFormats(formats)
	assert.Equal(t, []string{"a", "b", "c"}, formatIDs(formats))
}

func TestSortFormatsIDTieBreak(t *testing.T) {
	formats := []*MediaFormat{
		{FormatID: "http-b", Height: 360},
		{FormatID: "http-a", Height: 360},
	}
	SortFormats(formats)
	assert.Equal(t, []string{"http-a", "http-b"}, formatIDs(formats))
}

func TestGetDefaultFormat(t *testing.T) {
	media := &Media{Formats: sampleFormats()}
	originalOrder := formatIDs(media.Formats)

	best := media.GetDefaultFormat()
	require.NotNil(t, best)
	assert.Equal(t, "hls-800", best.FormatID)
	assert.True(t, best.IsDefault)
	// picking the default must not reorder the media's own list
	assert.Equal(t, originalOrder, formatIDs(media.Formats))

	empty := &Media{}
	assert.Nil(t, empty.GetDefaultFormat())
}

func TestGetFormat(t *testing.T) {
	media := &Media{Formats: sampleFormats()}
	require.NotNil(t, media.GetFormat("hls-audio"))
	assert.Nil(t, media.GetFormat("nope"))
}

func TestHasVideoHasAudio(t *testing.T) {
	media := &Media{Formats: sampleFormats()}
	assert.True(t, media.HasVideo())
	assert.True(t, media.HasAudio())

	audioOnly := &Media{Formats: []*MediaFormat{
		{FormatID: "mp3", Type: enums.MediaTypeAudio},
	}}
	assert.False(t, audioOnly.HasVideo())
	assert.True(t, audioOnly.HasAudio())
}

func TestMediaSetters(t *testing.T) {
	media := &Media{}

	media.SetDescription("")
	assert.False(t, media.Description.Valid)
	media.SetDescription("something")
	assert.Equal(t, "something", media.Description.String)

	media.AddThumbnail("")
	assert.Empty(t, media.Thumbnails)
	assert.Equal(t, "", media.Thumbnail())
	media.AddThumbnail("https://h/a.jpg")
	media.AddThumbnail("https://h/b.jpg")
	assert.Equal(t, "https://h/a.jpg", media.Thumbnail())

	media.AddSubtitle("it", nil)
	assert.Empty(t, media.Subtitles)
	media.AddSubtitle("it", &SubtitleVariant{Ext: "srt", URL: "https://h/s.srt"})
	require.Len(t, media.Subtitles["it"], 1)
}

func TestNewMedia(t *testing.T) {
	extractor := &Extractor{CodeName: "raiplay"}
	media := extractor.NewMedia("abc", "https://www.raiplay.it/video/x.html")
	assert.Equal(t, "abc", media.ContentID)
	assert.Equal(t, "https://www.raiplay.it/video/x.html", media.ContentURL)
	assert.Equal(t, "raiplay", media.ExtractorCodeName)

	playlist := extractor.NewPlaylist("prog")
	assert.Equal(t, "prog", playlist.ID)
}
