package ext

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"mex/config"
	"mex/enums"
	"mex/ext/rai"
	"mex/models"
	"mex/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxByURL(t *testing.T) {
	tests := []struct {
		url      string
		codeName string
		id       string
	}{
		{
			url:      "https://trailers.apple.com/trailers/focus_features/kuboandthetwostrings/",
			codeName: "appletrailers",
			id:       "kuboandthetwostrings",
		},
		{
			url:      "http://trailers.apple.com/ca/metropole/autrui/",
			codeName: "appletrailers",
			id:       "autrui",
		},
		{
			url:      "https://trailers.apple.com/#section=justadded",
			codeName: "appletrailers:section",
			id:       "justadded",
		},
		{
			url:      "https://www.ertflix.gr/vod/vod.173258-aoratoi-ergates",
			codeName: "ertflix",
			id:       "vod.173258",
		},
		{
			url:      "https://www.ertflix.gr/series/ser.164991-to-diktyo",
			codeName: "ertflix",
			id:       "ser.164991",
		},
		{
			url:      "https://livestreamfails.com/clip/139200",
			codeName: "livestreamfails",
			id:       "139200",
		},
		{
			url:      "https://www.nrk.no/video/frykter-fleire-nedleggingar/97FCA52D1A195D25",
			codeName: "nrk",
			id:       "97FCA52D1A195D25",
		},
		{
			url:      "https://www.nrk.no/lyd/radiodokumentaren/27E9D0A2E4A39A96",
			codeName: "nrk",
			id:       "27E9D0A2E4A39A96",
		},
		{
			url:      "https://tv.nrk.no/serie/kongelige-fotografer/KMTE50001117",
			codeName: "nrk:tv",
			id:       "KMTE50001117",
		},
		{
			url:      "https://tv.nrksuper.no/serie/labyrint/MSUI24000316",
			codeName: "nrk:tv",
			id:       "MSUI24000316",
		},
		{
			url:      "https://tv.nrk.no/program/MDDP12000117",
			codeName: "nrk:tv",
			id:       "MDDP12000117",
		},
		{
			url:      "https://www.raiplay.it/video/2014/04/Report-del-07042014-cb27157f-9dd0-4aee-b788-b1f67643a391.html",
			codeName: "raiplay",
			id:       "cb27157f-9dd0-4aee-b788-b1f67643a391",
		},
		{
			url:      "http://www.raiplay.it/video/2016/11/gazebotraindesi-efebe701-969c-4593-92f3-285f0d1ce750.json",
			codeName: "raiplay",
			id:       "efebe701-969c-4593-92f3-285f0d1ce750",
		},
		{
			url:      "http://www.raiplay.it/dirette/rainews24",
			codeName: "raiplay:live",
			id:       "rainews24",
		},
		{
			url:      "http://www.raiplay.it/programmi/nondirloalmiocapo/",
			codeName: "raiplay:playlist",
			id:       "nondirloalmiocapo",
		},
		{
			url:      "http://www.rainews.it/dl/rainews/media/Weekend-al-cinema-da-Hollywood-arriva-il-thriller-Solace-93a36997-35b8-465e-88af-945f0fcbbda9.html",
			codeName: "rai",
			id:       "93a36997-35b8-465e-88af-945f0fcbbda9",
		},
		{
			url:      "http://www.rai.it/dl/RaiTV/programmi/media/ContentItem-cd1e9b92-4b4a-4152-9fbc-3f466455eaa3.html",
			codeName: "rai",
			id:       "cd1e9b92-4b4a-4152-9fbc-3f466455eaa3",
		},
		{
			url:      "http://www.raiplayradio.it/audio/2019/07/RADIO2-A-GRANDE-RICHIESTA-b51baa55-64de-42d2-a1a0-e7e20b0e4d1d.html",
			codeName: "raiplayradio",
			id:       "b51baa55-64de-42d2-a1a0-e7e20b0e4d1d",
		},
		{
			url:      "http://www.raiplayradio.it/playlist/2017/12/Alza-il-volume-del-09122017-991b3e60-0825-4e0a-a3bb-61b4c0c9d535.html",
			codeName: "raiplayradio:playlist",
			id:       "991b3e60-0825-4e0a-a3bb-61b4c0c9d535",
		},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			ctx, err := CtxByURL(tt.url)
			require.NoError(t, err)
			require.NotNil(t, ctx, "no extractor claimed %s", tt.url)
			assert.Equal(t, tt.codeName, ctx.Extractor.CodeName)
			assert.Equal(t, tt.id, ctx.MatchedContentID)
		})
	}
}

func TestCtxByURLUnclaimed(t *testing.T) {
	urls := []string{
		"https://www.ertflix.gr/en/vod/vod.130833",
		"https://example.org/video/whatever",
		"https://www.raiplay.it/ricerca?q=report",
		"not a url",
	}
	for _, url := range urls {
		ctx, err := CtxByURL(url)
		assert.NoError(t, err, url)
		assert.Nil(t, ctx, url)
	}
}

func TestCtxByURLGroups(t *testing.T) {
	ctx, err := CtxByURL("https://www.raiplay.it/video/2014/04/Report-del-07042014-cb27157f-9dd0-4aee-b788-b1f67643a391.html")
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t,
		"https://www.raiplay.it/video/2014/04/Report-del-07042014-cb27157f-9dd0-4aee-b788-b1f67643a391",
		ctx.MatchedGroups["base"],
	)
	assert.Equal(t,
		"https://www.raiplay.it/video/2014/04/Report-del-07042014-cb27157f-9dd0-4aee-b788-b1f67643a391.html",
		ctx.MatchedContentURL,
	)

	ctx, err = CtxByURL("https://tv.nrk.no/serie/kongelige-fotografer/KMTE50001117")
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, "https://tv.nrk.no", ctx.MatchedGroups["baseurl"])

	ctx, err = CtxByURL("https://trailers.apple.com/trailers/focus_features/kuboandthetwostrings/")
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, "focus_features", ctx.MatchedGroups["company"])
	assert.Equal(t,
		"https://trailers.apple.com/trailers/focus_features/kuboandthetwostrings",
		ctx.MatchedContentURL,
	)
}

func TestCtxByURLDisabledExtractor(t *testing.T) {
	config.SetExtractorConfig("livestreamfails", &models.ExtractorConfig{IsDisabled: true})
	t.Cleanup(func() {
		config.SetExtractorConfig("livestreamfails", &models.ExtractorConfig{})
	})

	ctx, err := CtxByURL("https://livestreamfails.com/clip/139200")
	assert.NoError(t, err)
	assert.Nil(t, ctx)
}

func TestByCodeName(t *testing.T) {
	assert.Same(t, rai.Extractor, ByCodeName("rai"))
	assert.Nil(t, ByCodeName("unknown"))
}

// withExtractors appends extractors to the registry for one test.
func withExtractors(t *testing.T, extractors ...*models.Extractor) {
	t.Helper()
	original := List
	List = append(append([]*models.Extractor{}, original...), extractors...)
	t.Cleanup(func() { List = original })
}

func exampleMediaExtractor() *models.Extractor {
	extractor := &models.Extractor{
		Name:       "Example",
		CodeName:   "example",
		Type:       enums.ExtractorTypeSingle,
		URLPattern: regexp.MustCompile(`https?://media\.example\.com/watch/(?P<id>\d+)`),
		Host:       []string{"example"},
	}
	extractor.Run = func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		switch ctx.MatchedContentID {
		case "7":
			playlist := extractor.NewPlaylist("7")
			playlist.AddMedia(extractor.NewMedia("7-1", ctx.MatchedContentURL))
			return &models.ExtractorResponse{Playlist: playlist}, nil
		case "13":
			return nil, errors.New("upstream rejected the request")
		}
		media := extractor.NewMedia(ctx.MatchedContentID, ctx.MatchedContentURL)
		media.Title = "watch " + ctx.MatchedContentID
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	}
	return extractor
}

func TestCtxByURLMissingIDGroup(t *testing.T) {
	withExtractors(t, &models.Extractor{
		Name:       "Example Optional",
		CodeName:   "example:optional",
		Type:       enums.ExtractorTypeSingle,
		URLPattern: regexp.MustCompile(`https?://media\.example\.com/browse/(?P<id>\d+)?`),
		Host:       []string{"example"},
	})

	ctx, err := CtxByURL("https://media.example.com/browse/")
	assert.ErrorIs(t, err, util.ErrMissingURLGroup)
	assert.Nil(t, ctx)
}

func TestCtxByURLRedirect(t *testing.T) {
	redirect := &models.Extractor{
		Name:       "Example Shortener",
		CodeName:   "example:short",
		Type:       enums.ExtractorTypeSingle,
		URLPattern: regexp.MustCompile(`https?://go\.example\.com/r/(?P<id>\d+)`),
		Host:       []string{"example"},
		IsRedirect: true,
		Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
			return &models.ExtractorResponse{
				URL: "https://media.example.com/watch/42",
			}, nil
		},
	}
	withExtractors(t, exampleMediaExtractor(), redirect)

	ctx, err := CtxByURL("https://go.example.com/r/7")
	require.NoError(t, err)
	require.NotNil(t, ctx)
	assert.Equal(t, "example", ctx.Extractor.CodeName)
	assert.Equal(t, "42", ctx.MatchedContentID)
}

func TestCtxByURLTooManyRedirects(t *testing.T) {
	loop := &models.Extractor{
		Name:       "Example Loop",
		CodeName:   "example:loop",
		Type:       enums.ExtractorTypeSingle,
		URLPattern: regexp.MustCompile(`https?://go\.example\.com/loop/(?P<id>\d+)`),
		Host:       []string{"example"},
		IsRedirect: true,
		Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
			return &models.ExtractorResponse{
				URL: "https://go.example.com/loop/1",
			}, nil
		},
	}
	withExtractors(t, loop)

	ctx, err := CtxByURL("https://go.example.com/loop/1")
	assert.ErrorIs(t, err, util.ErrTooManyRedirects)
	assert.Nil(t, ctx)
}

func TestResolveEntries(t *testing.T) {
	withExtractors(t, exampleMediaExtractor())

	entries := []*models.PlaylistEntry{
		{URL: "https://media.example.com/watch/1"},
		{URL: "https://other.test/x"},
		{URL: "https://media.example.com/watch/7"},
		{URL: "https://media.example.com/watch/3"},
		{Media: &models.Media{ContentID: "pre"}},
	}
	ResolveEntries(context.Background(), entries, 2)

	require.NotNil(t, entries[0].Media)
	assert.Equal(t, "1", entries[0].Media.ContentID)
	assert.Nil(t, entries[1].Media)
	assert.NotEmpty(t, entries[1].URL)
	require.NotNil(t, entries[2].Playlist)
	assert.Equal(t, "7", entries[2].Playlist.ID)
	// limit reached before the fourth deferred entry
	assert.Nil(t, entries[3].Media)
	assert.Equal(t, "pre", entries[4].Media.ContentID)

	ResolveEntries(context.Background(), entries, 0)
	require.NotNil(t, entries[3].Media)
	assert.Equal(t, "3", entries[3].Media.ContentID)
}

func TestResolveEntriesFailureStaysDeferred(t *testing.T) {
	withExtractors(t, exampleMediaExtractor())

	entries := []*models.PlaylistEntry{
		{URL: "https://media.example.com/watch/13"},
	}
	ResolveEntries(context.Background(), entries, 0)
	assert.Nil(t, entries[0].Media)
	assert.Nil(t, entries[0].Playlist)
	assert.Equal(t, "https://media.example.com/watch/13", entries[0].URL)
}
