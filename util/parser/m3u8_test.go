package parser

import (
	"testing"

	"mex/enums"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const masterPlaylist = `#EXTM3U
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="audio",NAME="Italiano",DEFAULT=YES,AUTOSELECT=YES,LANGUAGE="it",URI="audio/prog_index.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=1200000,RESOLUTION=640x360,CODECS="avc1.64001f,mp4a.40.2",AUDIO="audio"
video/360/prog_index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2400000,RESOLUTION=1280x720,CODECS="avc1.640020,mp4a.40.2",AUDIO="audio"
video/720/prog_index.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXT-X-ENDLIST
`

func TestParseM3U8ContentMaster(t *testing.T) {
	formats, err := ParseM3U8Content(
		[]byte(masterPlaylist),
		"https://cdn.example.com/hls/master.m3u8",
	)
	require.NoError(t, err)
	require.Len(t, formats, 3)

	audio := formats[0]
	assert.Equal(t, "hls-audio", audio.FormatID)
	assert.Equal(t, enums.MediaTypeAudio, audio.Type)
	assert.Equal(t, "m4a", audio.Ext)
	assert.Equal(t, enums.MediaCodecAAC, audio.AudioCodec)
	assert.Equal(t, "https://cdn.example.com/hls/audio/prog_index.m3u8", audio.URL)

	low := formats[1]
	assert.Equal(t, "hls-1200", low.FormatID)
	assert.Equal(t, enums.MediaTypeVideo, low.Type)
	assert.Equal(t, enums.MediaCodecAVC, low.VideoCodec)
	// the audio track lives in the alternative rendition, not the variant
	assert.Empty(t, low.AudioCodec)
	assert.Equal(t, int64(640), low.Width)
	assert.Equal(t, int64(360), low.Height)
	assert.Equal(t, int64(1200000), low.Bitrate)
	assert.Equal(t, "https://cdn.example.com/hls/video/360/prog_index.m3u8", low.URL)

	high := formats[2]
	assert.Equal(t, "hls-2400", high.FormatID)
	assert.Equal(t, int64(1280), high.Width)
	assert.Equal(t, int64(720), high.Height)
}

func TestParseM3U8ContentMedia(t *testing.T) {
	formats, err := ParseM3U8Content(
		[]byte(mediaPlaylist),
		"https://cdn.example.com/hls/video/360/prog_index.m3u8",
	)
	require.NoError(t, err)
	require.Len(t, formats, 1)
	assert.Equal(t, "hls", formats[0].FormatID)
	assert.Equal(t, enums.MediaTypeVideo, formats[0].Type)
	assert.Equal(t, "https://cdn.example.com/hls/video/360/prog_index.m3u8", formats[0].URL)
}

func TestParseM3U8ContentInvalid(t *testing.T) {
	_, err := ParseM3U8Content([]byte("definitely not a playlist"), "https://cdn.example.com/x.m3u8")
	assert.Error(t, err)
}
