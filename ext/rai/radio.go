package rai

import (
	"fmt"
	"net/http"
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"

	"github.com/PuerkitoBio/goquery"
	"github.com/guregu/null/v6/zero"
	"go.uber.org/zap"
)

// fetchListAttrs pulls the attribute sets of the top level list items
// in a radio list fragment. Each item carries its whole metadata in
// data-* attributes; markup nested inside an item is ignored.
func fetchListAttrs(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	listURL string,
) ([]map[string]string, error) {
	page, err := util.FetchBytes(ctx.Context, client, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list page: %w", err)
	}
	doc, err := util.ParseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	var items []map[string]string
	doc.Find("body > li").Each(func(_ int, li *goquery.Selection) {
		attrs := make(map[string]string, len(li.Nodes[0].Attr))
		for _, attr := range li.Nodes[0].Attr {
			attrs[attr.Key] = attr.Val
		}
		items = append(items, attrs)
	})
	return items, nil
}

func buildRadioMedia(
	ctx *models.ExtractionContext,
	listURL string,
	contentURL string,
	attrs map[string]string,
) (*models.Media, error) {
	audioID := strings.TrimPrefix(attrs["data-uniquename"], "ContentItem-")
	title := strings.TrimSpace(attrs["data-title"])
	audioURL := util.ResolveURL(listURL, attrs["data-mediapolis"])
	if audioID == "" || title == "" || audioURL == "" {
		return nil, ErrInvalidListItem
	}

	media := ctx.Extractor.NewMedia(audioID, contentURL)
	media.Title = title
	media.Language = zero.StringFrom("it")
	media.AddThumbnail(util.ResolveURL(listURL, attrs["data-image"]))
	media.AddFormat(&models.MediaFormat{
		FormatID:   "mp3",
		Type:       enums.MediaTypeAudio,
		URL:        audioURL,
		Ext:        "mp3",
		AudioCodec: enums.MediaCodecMP3,
	})
	return media, nil
}

// GetRadioMedia resolves a single radio episode. The episode page has a
// sibling list fragment holding the actual stream references, keyed by
// the content id from the URL.
func GetRadioMedia(ctx *models.ExtractionContext) (*models.Media, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	listURL := strings.TrimSuffix(ctx.MatchedContentURL, ".html") + "-list.html"
	items, err := fetchListAttrs(ctx, client, listURL)
	if err != nil {
		return nil, err
	}
	for _, attrs := range items {
		id := strings.TrimPrefix(attrs["data-uniquename"], "ContentItem-")
		if id != ctx.MatchedContentID {
			continue
		}
		return buildRadioMedia(ctx, listURL, ctx.MatchedContentURL, attrs)
	}
	return nil, ErrAudioNotFound
}

// GetRadioPlaylist extracts a radio playlist page, resolving every list
// item into a track of the album named after the playlist.
func GetRadioPlaylist(ctx *models.ExtractionContext) (*models.Playlist, error) {
	client := networking.GetExtractorHTTPClient(ctx.Extractor)

	page, err := util.FetchBytes(
		ctx.Context, client, http.MethodGet, ctx.MatchedContentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist page: %w", err)
	}
	doc, err := util.ParseHTML(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamFormat, err)
	}

	title := strings.TrimSpace(util.FirstAttr(doc, "data-playlist-title"))
	playerHref := util.FirstAttr(doc, "data-player-href")
	if title == "" || playerHref == "" {
		return nil, ErrPlaylistDataNotFound
	}
	creator := strings.TrimSpace(util.MetaContent(doc, "nomeProgramma"))
	description := util.TextByClass(doc, "textDescriptionProgramma")

	listURL := util.ResolveURL(ctx.MatchedContentURL, playerHref)
	items, err := fetchListAttrs(ctx, client, listURL)
	if err != nil {
		return nil, err
	}

	playlist := ctx.Extractor.NewPlaylist(ctx.MatchedContentID)
	playlist.Title = title
	playlist.SetDescription(description)

	var trackNumber int64
	for _, attrs := range items {
		media, err := buildRadioMedia(ctx, listURL, listURL, attrs)
		if err != nil {
			zap.S().Debugf("skipping malformed list item: %v", err)
			continue
		}
		trackNumber++
		media.Track = zero.StringFrom(media.Title)
		media.TrackNumber = trackNumber
		if creator != "" {
			media.Artist = zero.StringFrom(creator)
		}
		media.Album = zero.StringFrom(title)
		playlist.AddMedia(media)
	}
	return playlist, nil
}
