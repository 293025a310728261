package rai

import (
	"fmt"
	"regexp"

	"mex/enums"
	"mex/models"
)

// uuidPattern matches the content ids Rai embeds in page URLs and player
// metadata.
const uuidPattern = `[\da-f]{8}-[\da-f]{4}-[\da-f]{4}-[\da-f]{4}-[\da-f]{12}`

var PlayExtractor = &models.Extractor{
	Name:       "RaiPlay",
	CodeName:   "raiplay",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`(?P<base>https?://(?:www\.)?raiplay\.it/.+?-(?P<id>` + uuidPattern + `))\.(?:html|json)`),
	Host:       []string{"raiplay"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetPlayMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

var PlayLiveExtractor = &models.Extractor{
	Name:       "RaiPlay Live",
	CodeName:   "raiplay:live",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`(?P<base>https?://(?:www\.)?raiplay\.it/dirette/(?P<id>[^/?#&]+))`),
	Host:       []string{"raiplay"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetPlayMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get live media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

var PlayPlaylistExtractor = &models.Extractor{
	Name:       "RaiPlay Playlist",
	CodeName:   "raiplay:playlist",
	Type:       enums.ExtractorTypePlaylist,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`(?P<base>https?://(?:www\.)?raiplay\.it/programmi/(?P<id>[^/?#&]+))`),
	Host:       []string{"raiplay"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		playlist, err := GetPlayPlaylist(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get program playlist: %w", err)
		}
		return &models.ExtractorResponse{
			Playlist: playlist,
		}, nil
	},
}

// Extractor handles the long tail of rai.it / rai.tv / rainews.it pages,
// where the content id has to be dug out of the page markup.
var Extractor = &models.Extractor{
	Name:       "Rai",
	CodeName:   "rai",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryBroadcast,
	URLPattern: regexp.MustCompile(`https?://[^/]+\.(?:rai\.(?:it|tv)|rainews\.it)/.+?-(?P<id>` + uuidPattern + `)(?:-.+?)?\.html`),
	Host:       []string{"rai", "rainews"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetGenericMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

var RadioExtractor = &models.Extractor{
	Name:       "RaiPlay Radio",
	CodeName:   "raiplayradio",
	Type:       enums.ExtractorTypeSingle,
	Category:   enums.ExtractorCategoryRadio,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?raiplayradio\.it/audio/.+?-(?P<id>` + uuidPattern + `)\.html`),
	Host:       []string{"raiplayradio"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		media, err := GetRadioMedia(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get radio media: %w", err)
		}
		return &models.ExtractorResponse{
			MediaList: []*models.Media{media},
		}, nil
	},
}

var RadioPlaylistExtractor = &models.Extractor{
	Name:       "RaiPlay Radio Playlist",
	CodeName:   "raiplayradio:playlist",
	Type:       enums.ExtractorTypePlaylist,
	Category:   enums.ExtractorCategoryRadio,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?raiplayradio\.it/playlist/.+?-(?P<id>` + uuidPattern + `)\.html`),
	Host:       []string{"raiplayradio"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		playlist, err := GetRadioPlaylist(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get radio playlist: %w", err)
		}
		return &models.ExtractorResponse{
			Playlist: playlist,
		}, nil
	},
}
