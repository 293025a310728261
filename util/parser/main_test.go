package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/playlist.m3u8", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, mediaPlaylist)
	})
	mux.HandleFunc("/manifest.mpd", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dashManifest)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	ctx := context.Background()
	client := server.Client()

	hlsFormats, err := ParseManifest(ctx, client, server.URL+"/playlist.m3u8", nil)
	require.NoError(t, err)
	require.Len(t, hlsFormats, 1)
	assert.Equal(t, "hls", hlsFormats[0].FormatID)

	dashFormats, err := ParseManifest(ctx, client, server.URL+"/manifest.mpd", nil)
	require.NoError(t, err)
	assert.Len(t, dashFormats, 2)

	_, err = ParseManifest(ctx, client, server.URL+"/video.flv", nil)
	assert.ErrorContains(t, err, "unsupported manifest")
}
