package livestreamfails

import (
	"fmt"
	"regexp"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"

	"github.com/guregu/null/v6/zero"
	"go.uber.org/zap"
)

// the clip page is a JS app; the private API it talks to serves the same
// metadata without rendering
const (
	apiEndpoint    = "https://api.livestreamfails.com/clip/"
	videoCDNPrefix = "https://livestreamfails-video-prod.b-cdn.net/video/"
	imageCDNPrefix = "https://livestreamfails-image-prod.b-cdn.net/image/"
)

var Extractor = &models.Extractor{
	Name:       "Livestreamfails",
	CodeName:   "livestreamfails",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryClips,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?livestreamfails\.com/clip/(?P<id>[0-9]+)`),
	Host:       []string{"livestreamfails"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetClipMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get clip: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

func GetClipMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	var clip clipResponse
	err := util.FetchJSON(
		ctx.Context, client,
		apiEndpoint+ctx.MatchedContentID,
		nil, nil, &clip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clip data: %w", err)
	}
	if clip.VideoID == "" {
		return nil, ErrClipVideoNotFound
	}

	media := ctx.Extractor.NewMedia(ctx.MatchedContentID, ctx.MatchedContentURL)
	media.DisplayID = clip.SourceID
	media.Title = clip.Label
	if clip.Streamer.Label != "" {
		media.Creator = zero.StringFrom(clip.Streamer.Label)
	}
	if clip.ImageID != "" {
		media.AddThumbnail(imageCDNPrefix + clip.ImageID)
	}
	if clip.CreatedAt != "" {
		timestamp, err := util.ParseISO8601(clip.CreatedAt)
		if err != nil {
			zap.S().Warnf("skipping clip timestamp: %v", err)
		} else {
			media.Timestamp = timestamp
		}
	}

	media.AddFormat(&models.MediaFormat{
		FormatID: "http",
		Type:     enums.MediaTypeVideo,
		URL:      videoCDNPrefix + clip.VideoID,
		Ext:      util.DetermineExt(clip.VideoID, "mp4"),
	})

	return media, nil
}
