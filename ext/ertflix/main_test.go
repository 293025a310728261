package ertflix

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"mex/models"
	"mex/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewriteTransport struct {
	server *httptest.Server
}

func (transport rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target, err := url.Parse(transport.server.URL)
	if err != nil {
		return nil, err
	}
	req.URL.Scheme = target.Scheme
	req.URL.Host = target.Host
	return transport.server.Client().Transport.RoundTrip(req)
}

func testCtx(t *testing.T, server *httptest.Server, rawURL string) *models.ExtractionContext {
	t.Helper()
	extractor := *Extractor
	extractor.Client = &http.Client{Transport: rewriteTransport{server}}

	matches := extractor.URLPattern.FindStringSubmatch(rawURL)
	require.NotNil(t, matches, "pattern did not match %s", rawURL)
	groups := make(map[string]string)
	for i, name := range extractor.URLPattern.SubexpNames() {
		if name != "" {
			groups[name] = matches[i]
		}
	}
	groups["match"] = matches[0]
	return &models.ExtractionContext{
		Context:           context.Background(),
		MatchedContentID:  groups["id"],
		MatchedContentURL: groups["match"],
		MatchedGroups:     groups,
		Extractor:         &extractor,
	}
}

const vodPage = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Το Δίκτυο | Επεισόδιο 1" />
<meta property="og:description" content="Η πρώτη ελληνική σειρά μυστηρίου" />
<meta property="og:image" content="https://www.ertflix.gr/thumbs/ep1.jpg" />
</head><body>
<script>
var mediaid = 130833;
jwplayer("player").setup({
	sources: [{ url : 'rtmp://ertflix.stream.gr/vod/mp4:to-diktyo-ep1.mp4' }],
	config: {"AgeRating": "12", "IsAdultContent": false}
});
</script>
</body></html>`

func serveVODPage(t *testing.T, page string) *models.ExtractionContext {
	t.Helper()
	mux := http.NewServeMux()
	// the extractor fetches the matched prefix of the page url, without
	// the trailing slug
	mux.HandleFunc("/vod/vod.130833", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return testCtx(t, server, "https://www.ertflix.gr/vod/vod.130833-to-diktyo")
}

func TestGetVideoMedia(t *testing.T) {
	ctx := serveVODPage(t, vodPage)

	media, err := GetVideoMedia(ctx)
	require.NoError(t, err)

	// the numeric media id from the player config wins over the url slug
	assert.Equal(t, "130833", media.ContentID)
	assert.Equal(t, "vod.130833", media.DisplayID)
	assert.Equal(t, "Το Δίκτυο | Επεισόδιο 1", media.Title)
	assert.Equal(t, "Η πρώτη ελληνική σειρά μυστηρίου", media.Description.String)
	assert.Equal(t, "https://www.ertflix.gr/thumbs/ep1.jpg", media.Thumbnail())
	assert.Equal(t, int64(12), media.AgeLimit)
	assert.Equal(t, "el", media.Language.String)

	require.Len(t, media.Formats, 1)
	format := media.Formats[0]
	assert.Equal(t, "rtmp", format.FormatID)
	assert.Equal(t, "rtmp://ertflix.stream.gr/vod/mp4:to-diktyo-ep1.mp4", format.URL)
	assert.Equal(t, "mp4", format.Ext)
}

func TestGetVideoMediaNoStream(t *testing.T) {
	ctx := serveVODPage(t, `<html><head><meta property="og:title" content="x"/></head><body>no player here</body></html>`)

	_, err := GetVideoMedia(ctx)
	assert.ErrorIs(t, err, ErrVideoURLNotFound)
}

func TestGetVideoMediaNoTitle(t *testing.T) {
	ctx := serveVODPage(t, `<html><body><script>var x = { url : 'rtmp://host/stream' };</script></body></html>`)

	_, err := GetVideoMedia(ctx)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}

func TestGetVideoMediaSlugFallback(t *testing.T) {
	page := `<html><head><meta property="og:title" content="Χωρίς mediaid"/></head>
<body><script>var player = { url : 'rtmp://host/vod/stream.mp4' };</script></body></html>`
	ctx := serveVODPage(t, page)

	media, err := GetVideoMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, "vod.130833", media.ContentID)
}

func TestGetVideoMediaNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)
	ctx := testCtx(t, server, "https://www.ertflix.gr/vod/vod.404404-gone")

	_, err := GetVideoMedia(ctx)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestParseAgeRating(t *testing.T) {
	tests := []struct {
		name string
		page string
		want int64
	}{
		{"quoted rating", `{"AgeRating": "16"}`, 16},
		{"bare rating", `{"AgeRating": 8}`, 8},
		{"adult flag", `{"IsAdultContent": true}`, 18},
		{"kids flag", `{"IsKidsContent": true}`, 0},
		{"rating wins over adult flag", `{"AgeRating": "12", "IsAdultContent": true}`, 12},
		{"no flags", `{"Title": "something"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAgeRating(tt.page))
		})
	}
}
