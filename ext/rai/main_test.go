package rai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"mex/models"

	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server, whatever host
// the extractor asked for. Handlers dispatch on path and query alone.
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

func testClient(server *httptest.Server) models.HTTPClient {
	return &http.Client{Transport: rewriteTransport{server}}
}

func testCtx(
	t *testing.T,
	server *httptest.Server,
	base *models.Extractor,
	rawURL string,
) *models.ExtractionContext {
	t.Helper()
	extractor := *base
	if server != nil {
		extractor.Client = testClient(server)
	}

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

const hlsMediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:9.009,
segment0.ts
#EXT-X-ENDLIST
`

const hlsMasterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=512x288,CODECS="avc1.66.30,mp4a.40.2"
relinker_512.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2400000,RESOLUTION=1280x720,CODECS="avc1.64001f,mp4a.40.2"
relinker_1280.m3u8
`
