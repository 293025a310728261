package ertflix

import (
	"fmt"
	"net/http"
	"regexp"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"

	"github.com/guregu/null/v6/zero"
)

var (
	// player config embeds the stream location as a quoted rtmp url
	videoURLRegex = regexp.MustCompile(`url\s*:\s*'(rtmp://[^']+)'`)
	mediaIDRegex  = regexp.MustCompile(`mediaid\s*=\s*(\d+)`)
)

var Extractor = &models.Extractor{
	Name:       "ERTFlix",
	CodeName:   "ertflix",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryStreaming,
	URLPattern: regexp.MustCompile(`https?://www\.ertflix\.gr/(?:series|vod)/(?P<id>[a-z]{3}\.\d+)`),
	Host:       []string{"ertflix"},

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

func GetVideoMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	page, err := util.FetchBytes(
		ctx.Context, client,
		http.MethodGet, ctx.MatchedContentURL, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	videoURL, ok := util.SearchRegex(videoURLRegex, string(page))
	if !ok {
		return nil, ErrVideoURLNotFound
	}

	// the player config carries a numeric media id; the slug from the
	// URL is only a fallback identity
	contentID := ctx.MatchedContentID
	if mediaID, ok := util.SearchRegex(mediaIDRegex, string(page)); ok {
		contentID = mediaID
	}

	doc, err := util.ParseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	title := util.OpenGraph(doc, "title")
	if title == "" {
		return nil, ErrTitleNotFound
	}

	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)
	media.DisplayID = ctx.MatchedContentID
	media.Title = title
	media.SetDescription(util.OpenGraph(doc, "description"))
	media.AddThumbnail(util.OpenGraph(doc, "image"))
	media.AgeLimit = parseAgeRating(string(page))
	media.Language = zero.StringFrom("el")

	media.AddFormat(&models.MediaFormat{
		FormatID: "rtmp",
		Type:     enums.MediaTypeVideo,
		URL:      videoURL,
		Ext:      util.DetermineExt(videoURL, "mp4"),
	})

	return media, nil
}
