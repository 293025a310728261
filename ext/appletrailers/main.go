package appletrailers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"

	"github.com/PuerkitoBio/goquery"
	"github.com/guregu/null/v6/zero"
	"go.uber.org/zap"
)

const (
	baseURL = "http://trailers.apple.com"

	// the CDN only serves trailer files to QuickTime-looking clients
	quickTimeUA = "QuickTime compatible (mex)"
)

var Extractor = &models.Extractor{
	Name:       "Apple Trailers",
	CodeName:   "appletrailers",
	Type:       enums.ExtractorTypePlaylist,
	Category:   enums.ExtractorCategoryCatalog,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?trailers\.apple\.com/(?:trailers|ca)/(?P<company>[^/]+)/(?P<id>[^/]+)`),
	Host:       []string{"apple"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		playlist, err := GetMoviePlaylist(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get movie playlist: %w", err)
		}
		return &models.ExtractorResponse{
			Playlist: playlist,
		}, nil
	},
}

type section struct {
	FeedPath string
	Title    string
}

var sections = map[string]section{
	"justadded":    {"just_added", "Just Added"},
	"exclusive":    {"exclusive", "Exclusive"},
	"justhd":       {"just_hd", "Just HD"},
	"mostpopular":  {"most_pop", "Most Popular"},
	"moviestudios": {"studios", "Movie Studios"},
}

var SectionExtractor = &models.Extractor{
	Name:       "Apple Trailers (Section)",
	CodeName:   "appletrailers:section",
	Type:       enums.ExtractorTypePlaylist,
	Category:   enums.ExtractorCategoryCatalog,
	URLPattern: regexp.MustCompile(`https?://(?:www\.)?trailers\.apple\.com/#section=(?P<id>justadded|exclusive|justhd|mostpopular|moviestudios)`),
	Host:       []string{"apple"},

	Run: func(ctx *models.ExtractionContext) (*models.ExtractorResponse, error) {
		playlist, err := GetSectionPlaylist(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get section playlist: %w", err)
		}
		return &models.ExtractorResponse{
			Playlist: playlist,
		}, nil
	},
}

func GetMoviePlaylist(ctx *models.ExtractionContext) (*models.Playlist, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	movie := ctx.MatchedContentID
	company := ctx.MatchedGroups["company"]

	playlistURL := ctx.MatchedContentURL + "/includes/playlists/itunes.inc"
	page, err := util.FetchBytes(ctx.Context, client, http.MethodGet, playlistURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trailer playlist: %w", err)
	}

	doc, err := util.ParseHTML(fixPlaylistHTML(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	playlist := ctx.Extractor.NewPlaylist(movie)

	var itemErr error
	doc.Find("ul li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		onClick, ok := li.Find("a").First().Attr("onclick")
		if !ok {
			return true
		}
		infoJSON, ok := util.SearchRegex(playURLRegex, onClick)
		if !ok {
			itemErr = ErrTrailerInfoNotFound
			return false
		}

		var info trailerInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			itemErr = fmt.Errorf("failed to decode trailer info: %w", err)
			return false
		}
		if info.URL == "" {
			return true
		}
		if info.Title == "" {
			itemErr = ErrTrailerInfoNotFound
			return false
		}

		media := buildTrailerMedia(ctx, client, movie, company, li, &info)
		playlist.AddMedia(media)
		return true
	})
	if itemErr != nil {
		return nil, itemErr
	}

	return playlist, nil
}

func buildTrailerMedia(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	movie string,
	company string,
	li *goquery.Selection,
	info *trailerInfo,
) *models.Media {
	media := ctx.Extractor.NewMedia(slugifyTitle(movie, info.Title), ctx.MatchedContentURL)
	media.Title = info.Title
	media.Uploader = zero.StringFrom(company)
	media.UploadDate = strings.ReplaceAll(info.Posted, "-", "")
	media.Duration = util.ParseDurationString(info.Runtime)
	media.HTTPHeaders = map[string]string{"User-Agent": quickTimeUA}

	if thumbnail, ok := li.Find("img").First().Attr("src"); ok {
		media.AddThumbnail(thumbnail)
	}

	trailerID := trailerSettingsID(info.URL)
	settingsURL := fmt.Sprintf("%s/includes/settings/%s.json", ctx.MatchedContentURL, trailerID)

	var settings trailerSettings
	if err := util.FetchJSON(ctx.Context, client, settingsURL, nil, nil, &settings); err != nil {
		zap.S().Warnf(
			"no settings json for trailer %s, falling back to direct url: %v",
			trailerID, err,
		)
		media.AddFormat(&models.MediaFormat{
			FormatID: util.DetermineExt(info.URL, "mov"),
			Type:     enums.MediaTypeVideo,
			URL:      directDownloadURL(info.URL),
			Ext:      util.DetermineExt(info.URL, "mov"),
			Width:    int64(info.Width),
			Height:   int64(info.Height),
		})
		return media
	}

	for _, size := range settings.Metadata.Sizes {
		if size.Src == "" {
			continue
		}
		media.AddFormat(&models.MediaFormat{
			FormatID: size.Type,
			Type:     enums.MediaTypeVideo,
			URL:      sizeSrcRegex.ReplaceAllString(size.Src, "_h$1"),
			Ext:      util.DetermineExt(size.Src, "mov"),
			Width:    int64(size.Width),
			Height:   int64(size.Height),
		})
	}
	media.SortFormats()
	return media
}

func GetSectionPlaylist(ctx *models.ExtractionContext) (*models.Playlist, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	sec, ok := sections[ctx.MatchedContentID]
	if !ok {
		return nil, ErrUnknownSection
	}

	feedURL := fmt.Sprintf("%s/trailers/home/feeds/%s.json", baseURL, sec.FeedPath)
	var entries []sectionEntry
	if err := util.FetchJSON(ctx.Context, client, feedURL, nil, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to fetch section feed: %w", err)
	}

	playlist := ctx.Extractor.NewPlaylist(ctx.MatchedContentID)
	playlist.Title = sec.Title
	for _, entry := range entries {
		if entry.Location == "" {
			continue
		}
		playlist.AddURL(baseURL + entry.Location)
	}
	return playlist, nil
}
