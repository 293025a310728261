package rai

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
	"github.com/google/uuid"
	"github.com/guregu/null/v6/zero"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const contentItemEndpoint = "http://www.rai.tv/dl/RaiTV/programmi/media/ContentItem-%s.html?json"

var (
	contentItemIDRegex = regexp.MustCompile(`ContentItem-(` + uuidPattern + `)`)

	// player invocations the content id hides in; the argument may be
	// quoted either way, hence the two capture groups
	inlinePlayerRegex = regexp.MustCompile(
		`(?:(?:initEdizione|drawMediaRaiTV)\(|<(?:[^>]+\bdata-id|var\s+uniquename)=|<iframe[^>]+\bsrc=)` +
			`(?:"[^"]*\bContentItem-(?P<dq>` + uuidPattern + `)|'[^']*\bContentItem-(?P<sq>` + uuidPattern + `))`)

	relinkerDQRegex = regexp.MustCompile(
		`(?:var\s+videoURL|mediaInfo\.mediaUri)\s*=\s*` +
			`"((?:https?:)?//mediapolis(?:vod)?\.rai\.it/relinker/relinkerServlet\.htm\?[^"]*\bcont=[^"]+)"`)
	relinkerSQRegex = regexp.MustCompile(
		`(?:var\s+videoURL|mediaInfo\.mediaUri)\s*=\s*` +
			`'((?:https?:)?//mediapolis(?:vod)?\.rai\.it/relinker/relinkerServlet\.htm\?[^']*\bcont=[^']+)'`)

	videoTitleDQRegex = regexp.MustCompile(`var\s+videoTitolo\s*=\s*"([^'"]+)"`)
	videoTitleSQRegex = regexp.MustCompile(`var\s+videoTitolo\s*=\s*'([^'"]+)'`)
)

// contentIDStrategies are tried in order and the first hit wins; the id
// from the page URL is always appended as a last candidate.
var contentIDStrategies = []struct {
	name string
	find func(page string, doc *goquery.Document) (string, bool)
}{
	{"share meta", findMetaContentID},
	{"inline player call", findInlineContentID},
}

func findMetaContentID(_ string, doc *goquery.Document) (string, bool) {
	shareURL := util.MetaContent(doc,
		"og:url", "og:video", "og:video:secure_url",
		"twitter:url", "twitter:player", "jsonlink")
	if shareURL == "" {
		return "", false
	}
	return util.SearchRegex(contentItemIDRegex, shareURL)
}

func findInlineContentID(page string, _ *goquery.Document) (string, bool) {
	match := inlinePlayerRegex.FindStringSubmatch(page)
	if match == nil {
		return "", false
	}
	for _, group := range []string{"dq", "sq"} {
		idx := inlinePlayerRegex.SubexpIndex(group)
		if idx >= 0 && match[idx] != "" {
			return match[idx], true
		}
	}
	return "", false
}

func discoverContentIDs(page string, doc *goquery.Document, urlID string) []string {
	var candidates []string
	for _, strategy := range contentIDStrategies {
		if id, ok := strategy.find(page, doc); ok {
			zap.S().Debugf("content item id %s found via %s", id, strategy.name)
			candidates = append(candidates, id)
			break
		}
	}
	if len(candidates) == 0 || candidates[0] != urlID {
		candidates = append(candidates, urlID)
	}

	valid := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if _, err := uuid.Parse(candidate); err != nil {
			zap.S().Debugf("dropping malformed content item id %q", candidate)
			continue
		}
		valid = append(valid, candidate)
	}
	return valid
}

// GetGenericMedia extracts from the sprawl of rai.it properties. Content
// id candidates dug out of the page are tried one by one against the
// ContentItem endpoint; when none works the legacy inline player
// variables are the last resort.
func GetGenericMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	pageURL := ctx.MatchedContentURL
	page, err := util.FetchBytes(ctx.Context, client, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	doc, err := util.ParseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}
	pageStr := string(page)

	for _, candidate := range discoverContentIDs(pageStr, doc, ctx.MatchedContentID) {
		media, err := getContentItemMedia(ctx, client, candidate, pageURL)
		if err == nil {
			return media, nil
		}
		// a restriction is definitive, the other candidates would
		// hit the same wall
		if util.IsGeoRestricted(err) {
			return nil, err
		}
		zap.S().Debugf("content item %s not usable: %v", candidate, err)
	}

	return getLegacyPlayerMedia(ctx, client, pageStr, doc)
}

func getContentItemMedia(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	contentID string,
	pageURL string,
) (*models.Media, error) {
	data, err := util.FetchBytes(
		ctx.Context, client, http.MethodGet,
		fmt.Sprintf(contentItemEndpoint, contentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content item: %w", err)
	}
	item := gjson.ParseBytes(data)

	title := strings.TrimSpace(item.Get("name").String())
	if title == "" {
		return nil, ErrTitleNotFound
	}

	media := ctx.Extractor.NewMedia(contentID, pageURL)
	media.Title = title
	media.SetDescription(strings.TrimSpace(item.Get("desc").String()))
	if author := strings.TrimSpace(item.Get("author").String()); author != "" {
		media.Uploader = zero.StringFrom(author)
	}
	media.UploadDate = util.UnifiedStrdate(item.Get("date").String())
	media.Duration = util.ParseDurationString(item.Get("length").String())

	for _, imageKey := range []string{"image", "image_medium", "image_300"} {
		media.AddThumbnail(util.ResolveURL(pageURL, item.Get(imageKey).String()))
	}
	media.Subtitles = extractSubtitles(pageURL, item)

	mediaType := item.Get("type").String()
	switch {
	case strings.Contains(mediaType, "Audio"):
		audioURL := item.Get("audioUrl").String()
		if audioURL == "" {
			return nil, ErrStreamURLNotFound
		}
		audioExt := item.Get("formatoAudio").String()
		formatID := audioExt
		if formatID == "" {
			formatID = "audio"
		}
		media.AddFormat(&models.MediaFormat{
			FormatID:   formatID,
			Type:       enums.MediaTypeAudio,
			URL:        audioURL,
			Ext:        audioExt,
			AudioCodec: audioCodecForExt(audioExt),
		})
	case strings.Contains(mediaType, "Video"):
		mediaURI := item.Get("mediaUri").String()
		if mediaURI == "" {
			return nil, ErrStreamURLNotFound
		}
		relinker, err := extractRelinkerInfo(ctx, client, mediaURI)
		if err != nil {
			return nil, err
		}
		media.IsLive = relinker.IsLive
		if relinker.Duration > 0 {
			media.Duration = relinker.Duration
		}
		media.Formats = relinker.Formats
	default:
		return nil, util.ErrNotMediaFile
	}

	media.SortFormats()
	return media, nil
}

func getLegacyPlayerMedia(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	page string,
	doc *goquery.Document,
) (*models.Media, error) {
	relinkerURL, ok := util.SearchRegex(relinkerDQRegex, page)
	if !ok {
		relinkerURL, ok = util.SearchRegex(relinkerSQRegex, page)
	}
	if !ok {
		return nil, ErrRelinkerURLNotFound
	}
	if strings.HasPrefix(relinkerURL, "//") {
		relinkerURL = "http:" + relinkerURL
	}

	relinker, err := extractRelinkerInfo(ctx, client, relinkerURL)
	if err != nil {
		return nil, err
	}

	title, ok := util.SearchRegex(videoTitleDQRegex, page)
	if !ok {
		title, ok = util.SearchRegex(videoTitleSQRegex, page)
	}
	if !ok {
		title = util.OpenGraph(doc, "title")
	}
	if title == "" {
		return nil, ErrTitleNotFound
	}

	media := ctx.Extractor.NewMedia(ctx.MatchedContentID, ctx.MatchedContentURL)
	media.Title = title
	media.IsLive = relinker.IsLive
	media.Duration = relinker.Duration
	media.Formats = relinker.Formats
	media.SortFormats()
	return media, nil
}
