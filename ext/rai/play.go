package rai

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"mex/models"
	"mex/util"
	"mex/util/networking"

	"github.com/guregu/null/v6/zero"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// GetPlayMedia extracts a single RaiPlay item, both on-demand pages and
// the dirette live channels. The page metadata lives in a JSON document
// at the page URL with a .json extension; the stream itself sits behind
// a relinker URL inside it.
func GetPlayMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	base := ctx.MatchedGroups["base"]
	videoID := ctx.MatchedContentID

	data, err := util.FetchBytes(ctx.Context, client, http.MethodGet, base+".json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media data: %w", err)
	}
	var info playMedia
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	title := strings.TrimSpace(info.Name)
	if title == "" {
		return nil, ErrTitleNotFound
	}
	if info.Video.ContentURL == "" {
		return nil, ErrStreamURLNotFound
	}

	relinker, err := extractRelinkerInfo(ctx, client, info.Video.ContentURL)
	if err != nil {
		return nil, err
	}

	contentID := strings.TrimPrefix(info.ID, "ContentItem-")
	if contentID == "" {
		contentID = videoID
	}
	media := ctx.Extractor.NewMedia(contentID, ctx.MatchedContentURL)
	media.DisplayID = videoID
	media.IsLive = relinker.IsLive
	if relinker.IsLive {
		title = util.LiveTitle(title)
	}
	media.Title = title
	if alt := strings.TrimSpace(info.Subtitle); alt != "" {
		media.AltTitle = zero.StringFrom(alt)
	}
	media.SetDescription(strings.TrimSpace(info.Description))
	if channel := strings.TrimSpace(info.Channel); channel != "" {
		media.Uploader = zero.StringFrom(channel)
	}
	if editor := strings.TrimSpace(info.Editor); editor != "" {
		media.Creator = zero.StringFrom(editor)
	}

	media.Duration = util.ParseDurationString(info.Video.Duration)
	if relinker.Duration > 0 {
		media.Duration = relinker.Duration
	}

	datePublished := info.DatePublished
	if datePublished != "" && info.TimePublished != "" {
		datePublished += " " + info.TimePublished
	}
	media.Timestamp = util.UnifiedTimestamp(datePublished)

	if series := strings.TrimSpace(info.ProgramInfo.Name); series != "" {
		media.Series = zero.StringFrom(series)
	}
	if season := string(info.Season); season != "" {
		if number, err := strconv.ParseInt(season, 10, 64); err == nil {
			media.SeasonNumber = number
		} else {
			media.Season = zero.StringFrom(season)
		}
	}
	if episodeTitle := strings.TrimSpace(info.EpisodeTitle); episodeTitle != "" {
		media.Episode = zero.StringFrom(episodeTitle)
	}
	if number, err := strconv.ParseInt(string(info.Episode), 10, 64); err == nil {
		media.EpisodeNumber = number
	}

	// map iteration order is random, keep the thumbnail order stable
	imageKeys := make([]string, 0, len(info.Images))
	for key := range info.Images {
		imageKeys = append(imageKeys, key)
	}
	sort.Strings(imageKeys)
	for _, key := range imageKeys {
		media.AddThumbnail(util.ResolveURL(ctx.MatchedContentURL, info.Images[key]))
	}

	media.Subtitles = extractSubtitles(
		ctx.MatchedContentURL, gjson.GetBytes(data, "video"))

	media.Formats = relinker.Formats
	media.SortFormats()
	return media, nil
}

// GetPlayPlaylist walks a RaiPlay program page: every block/set pair has
// its own JSON document listing episodes, which are deferred as URL
// entries for the single-item extractor.
func GetPlayPlaylist(ctx *models.ExtractionContext) (*models.Playlist, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	base := ctx.MatchedGroups["base"]

	var program programData
	err := util.FetchJSON(ctx.Context, client, base+".json", nil, nil, &program)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch program data: %w", err)
	}

	playlist := ctx.Extractor.NewPlaylist(ctx.MatchedContentID)
	playlist.Title = strings.TrimSpace(program.Name)
	playlist.SetDescription(strings.TrimSpace(program.ProgramInfo.Description))

	for _, block := range program.Blocks {
		for _, set := range block.Sets {
			if set.ID == "" {
				continue
			}
			setURL := fmt.Sprintf("%s/%s.json", base, set.ID)
			var medias contentSet
			if err := util.FetchJSON(ctx.Context, client, setURL, nil, nil, &medias); err != nil {
				zap.S().Warnf("failed to fetch content set %s: %v", set.ID, err)
				continue
			}
			for _, item := range medias.Items {
				if item.PathID == "" {
					continue
				}
				playlist.AddURL(util.ResolveURL(ctx.MatchedContentURL, item.PathID))
			}
		}
	}
	return playlist, nil
}
