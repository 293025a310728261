package rai

import (
	"testing"

	"mex/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidwall/gjson"
)

const subtitlesPageURL = "https://www.raiplay.it/video/2014/04/report.html"

func TestExtractSubtitlesArray(t *testing.T) {
	data := gjson.Parse(`{
		"subtitlesArray": [
			{"language": "it", "url": "/captions/ep1.srt"},
			{"language": "en", "url": "/captions/ep1-en.vtt"},
			{"language": "de", "url": 42},
			{"url": "/captions/ep1-default.srt"}
		]
	}`)

	subtitles := extractSubtitles(subtitlesPageURL, data)

	italian := subtitles["it"]
	require.Len(t, italian, 2)
	assert.Equal(t, "srt", italian[0].Ext)
	assert.Equal(t, "https://www.raiplay.it/captions/ep1.srt", italian[0].URL)
	// entries without a language land in the default bucket
	assert.Equal(t, "https://www.raiplay.it/captions/ep1-default.srt", italian[1].URL)

	english := subtitles["en"]
	require.Len(t, english, 1)
	assert.Equal(t, "vtt", english[0].Ext)

	// a non-string url is upstream noise, not a reference
	assert.NotContains(t, subtitles, "de")
}

func TestExtractSubtitlesLegacyKeys(t *testing.T) {
	data := gjson.Parse(`{"subtitlesUrl": "/captions/legacy.stl"}`)

	subtitles := extractSubtitles(subtitlesPageURL, data)

	italian := subtitles["it"]
	require.Len(t, italian, 2)
	assert.Equal(t, "stl", italian[0].Ext)
	assert.Equal(t, "https://www.raiplay.it/captions/legacy.stl", italian[0].URL)
	assert.Equal(t, "srt", italian[1].Ext)
	assert.Equal(t, "https://www.raiplay.it/captions/legacy.srt", italian[1].URL)
}

func TestExtractSubtitlesEmpty(t *testing.T) {
	assert.Nil(t, extractSubtitles(subtitlesPageURL, gjson.Parse(`{}`)))
	assert.Nil(t, extractSubtitles(subtitlesPageURL, gjson.Parse(`{"subtitles": ""}`)))
}

func TestAudioCodecForExt(t *testing.T) {
	tests := []struct {
		ext  string
		want enums.MediaCodec
	}{
		{"mp3", enums.MediaCodecMP3},
		{"MP3", enums.MediaCodecMP3},
		{"m4a", enums.MediaCodecAAC},
		{"aac", enums.MediaCodecAAC},
		{"flac", enums.MediaCodecFLAC},
		{"ogg", enums.MediaCodecOpus},
		{"opus", enums.MediaCodecOpus},
		{"wma", enums.MediaCodec("")},
		{"", enums.MediaCodec("")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, audioCodecForExt(tt.ext), "ext %q", tt.ext)
	}
}
