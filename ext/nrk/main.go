package nrk

import (
	"fmt"
	"net/http"
	"regexp"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"

	"go.uber.org/zap"
)

const (
	psapiEndpoint = "http://v7.psapi.nrk.no/mediaelement/"

	// the Akamai HDS edge rejects requests without a player handshake
	hdcoreSuffix = "?hdcore=3.1.1&plugin=aasp-3.1.1.69.124"
)

var videoIDRegex = regexp.MustCompile(`<div class="nrk-video" data-nrk-id="(\d+)">`)

var Extractor = &models.Extractor{
	Name:       "NRK",
	CodeName:   "nrk",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?nrk\.no/(?:video|lyd)/[^/]+/(?P<id>[0-9A-F]{16})`),
	Host:       []string{"nrk"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetVideoMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

var TVExtractor = &models.Extractor{
	Name:       "NRK TV",
	CodeName:   "nrk:tv",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`(?P<baseurl>https?://tv\.nrk(?:super)?\.no)/(?:serie/[^/]+|program)/(?P<id>[a-zA-Z]{4}\d{8})`),
	Host:       []string{"nrk", "nrksuper"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetTVMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

// GetVideoMedia resolves a nrk.no video/lyd page: the page carries a
// numeric id pointing into the PSAPI media element service, which holds
// the actual stream location and rights flags.
func GetVideoMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	page, err := util.FetchBytes(
		ctx.Context, client,
		http.MethodGet, ctx.MatchedContentURL, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	psapiID, ok := util.SearchRegex(videoIDRegex, string(page))
	if !ok {
		return nil, ErrVideoIDNotFound
	}

	var element mediaElement
	err = util.FetchJSON(
		ctx.Context, client,
		psapiEndpoint+psapiID,
		nil, nil, &element,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media element: %w", err)
	}

	if element.UsageRights.IsGeoBlocked {
		return nil, util.NewGeoRestrictedError([]string{"NO"})
	}
	if element.Title == "" {
		return nil, ErrTitleNotFound
	}
	if element.MediaURL == "" {
		return nil, ErrStreamURLNotFound
	}

	media := ctx.Extractor.NewMedia(psapiID, ctx.MatchedContentURL)
	media.DisplayID = ctx.MatchedContentID
	media.Title = element.Title
	media.SetDescription(element.Description)
	media.AddThumbnail(element.widestImage())

	media.AddFormat(&models.MediaFormat{
		FormatID: "hds",
		Type:     enums.MediaTypeVideo,
		URL:      element.MediaURL + hdcoreSuffix,
		Ext:      "flv",
	})

	return media, nil
}

// GetTVMedia resolves a tv.nrk.no / tv.nrksuper.no program page. All
// metadata lives in the page itself as meta tags and data attributes;
// captions are a separate TTML document converted to SRT here.
func GetTVMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	page, err := util.FetchBytes(
		ctx.Context, client,
		http.MethodGet, ctx.MatchedContentURL, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	doc, err := util.ParseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	title := util.MetaContent(doc, "title")
	if title == "" {
		return nil, ErrTitleNotFound
	}

	media := ctx.Extractor.NewMedia(ctx.MatchedContentID, ctx.MatchedContentURL)
	media.Title = title
	media.SetDescription(util.MetaContent(doc, "description"))
	media.AddThumbnail(util.FirstAttr(doc, "data-posterimage"))
	media.Duration = util.ParseDurationString(util.FirstAttr(doc, "data-duration"))
	media.UploadDate = util.UnifiedStrdate(util.MetaContent(doc, "rightsfrom"))

	if subtitlesURL := util.FirstAttr(doc, "data-subtitlesurl"); subtitlesURL != "" {
		baseURL := ctx.MatchedGroups["baseurl"]
		lang, srt, err := fetchCaptions(ctx, client, util.ResolveURL(baseURL, subtitlesURL))
		if err != nil {
			zap.S().Warnf("skipping subtitles for %s: %v", ctx.MatchedContentID, err)
		} else {
			media.AddSubtitle(lang, &models.SubtitleVariant{
				Ext:  "srt",
				Data: srt,
			})
		}
	}

	if f4mURL := util.FirstAttr(doc, "data-media"); f4mURL != "" {
		media.AddFormat(&models.MediaFormat{
			FormatID: "f4m",
			Type:     enums.MediaTypeVideo,
			URL:      f4mURL + hdcoreSuffix,
			Ext:      "flv",
		})
	}
	if hlsURL := util.FirstAttr(doc, "data-hls-media"); hlsURL != "" {
		media.AddFormat(&models.MediaFormat{
			FormatID: "m3u8",
			Type:     enums.MediaTypeVideo,
			URL:      hlsURL,
			Ext:      "mp4",
		})
	}
	if len(media.Formats) == 0 {
		return nil, util.ErrNoFormatsFound
	}
	media.SortFormats()

	return media, nil
}

func fetchCaptions(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	captionsURL string,
) (string, string, error) {
	data, err := util.FetchBytes(
		ctx.Context, client,
		http.MethodGet, captionsURL, nil,
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	return ConvertTTMLToSRT(data)
}
