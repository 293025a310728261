package util

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBaseHost(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.raiplay.it/video/x.html", "raiplay"},
		{"https://www.raiplayradio.it/audio/x.html", "raiplayradio"},
		{"https://tv.nrksuper.no/serie/labyrint", "nrksuper"},
		{"http://trailers.apple.com/trailers/wb/manofsteel/", "apple"},
		{"https://www.rainews.it/dl/rainews/media/x.html", "rainews"},
		{"http://www.rai.tv/dl/RaiTV/x.html", "rai"},
	}
	for _, tt := range tests {
		host, err := ExtractBaseHost(tt.url)
		require.NoError(t, err, "url %q", tt.url)
		assert.Equal(t, tt.want, host, "url %q", tt.url)
	}

	_, err := ExtractBaseHost("not a url")
	assert.Error(t, err)
}

func TestGetLastError(t *testing.T) {
	last := GetLastError(fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", ErrNoFormatsFound)))
	assert.Equal(t, ErrNoFormatsFound, last)

	plain := fmt.Errorf("no cause")
	assert.Equal(t, plain, GetLastError(plain))
}
