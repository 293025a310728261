package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"mex/enums"
	"mex/models"
	"mex/util"

	"github.com/grafov/m3u8"
	"github.com/pkg/errors"
)

// ParseM3U8Content expands an HLS playlist into format candidates. Master
// playlists yield one format per variant plus one per audio alternative;
// a bare media playlist yields a single format pointing at itself.
func ParseM3U8Content(
	content []byte,
	baseURL string,
) ([]*models.MediaFormat, error) {
	baseURLObj, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	buf := bytes.NewBuffer(content)
	playlist, listType, err := m3u8.DecodeFrom(buf, true)
	if err != nil {
		return nil, fmt.Errorf("failed parsing m3u8: %w", err)
	}

	switch listType {
	case m3u8.MASTER:
		return parseMasterPlaylist(
			playlist.(*m3u8.MasterPlaylist),
			baseURLObj,
		), nil
	case m3u8.MEDIA:
		return []*models.MediaFormat{{
			FormatID: "hls",
			Type:     enums.MediaTypeVideo,
			Ext:      "mp4",
			URL:      baseURLObj.String(),
		}}, nil
	}

	return nil, errors.New("unsupported m3u8 playlist type")
}

func parseMasterPlaylist(
	playlist *m3u8.MasterPlaylist,
	baseURL *url.URL,
) []*models.MediaFormat {
	formats := make([]*models.MediaFormat, 0, len(playlist.Variants)*2)

	seenAlternatives := make(map[string]bool)
	for _, variant := range playlist.Variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		for _, alt := range variant.Alternatives {
			if _, ok := seenAlternatives[alt.GroupId]; ok {
				continue
			}
			seenAlternatives[alt.GroupId] = true
			format := parseAlternative(playlist.Variants, alt, baseURL)
			if format == nil {
				continue
			}
			formats = append(formats, format)
		}
		width, height := getResolution(variant.Resolution)
		mediaType, videoCodec, audioCodec := parseVariantType(variant)
		if variant.Audio != "" {
			audioCodec = ""
		}
		formats = append(formats, &models.MediaFormat{
			FormatID:   fmt.Sprintf("hls-%d", variant.Bandwidth/1000),
			Type:       mediaType,
			Ext:        "mp4",
			VideoCodec: videoCodec,
			AudioCodec: audioCodec,
			Bitrate:    int64(variant.Bandwidth),
			Width:      width,
			Height:     height,
			URL:        resolveURL(baseURL, variant.URI),
		})
	}
	return formats
}

func parseAlternative(
	variants []*m3u8.Variant,
	alternative *m3u8.Alternative,
	baseURL *url.URL,
) *models.MediaFormat {
	if alternative == nil || alternative.URI == "" {
		return nil
	}
	if alternative.Type != "AUDIO" {
		return nil
	}
	return &models.MediaFormat{
		FormatID:   "hls-" + alternative.GroupId,
		Type:       enums.MediaTypeAudio,
		Ext:        "m4a",
		AudioCodec: getAudioAlternativeCodec(variants, alternative),
		URL:        resolveURL(baseURL, alternative.URI),
	}
}

func getAudioAlternativeCodec(
	variants []*m3u8.Variant,
	alt *m3u8.Alternative,
) enums.MediaCodec {
	for _, variant := range variants {
		if variant == nil || variant.URI == "" {
			continue
		}
		if variant.Audio != alt.GroupId {
			continue
		}
		audioCodec := getAudioCodec(variant.Codecs)
		if audioCodec != "" {
			return audioCodec
		}
	}
	return ""
}

// ParseM3U8FromURL fetches a playlist with the extractor's client and
// expands it.
func ParseM3U8FromURL(
	ctx context.Context,
	client models.HTTPClient,
	rawURL string,
	headers map[string]string,
) ([]*models.MediaFormat, error) {
	body, err := util.FetchBytes(ctx, client, http.MethodGet, rawURL, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch m3u8 content: %w", err)
	}
	return ParseM3U8Content(body, rawURL)
}

func getResolution(resolution string) (int64, int64) {
	var width, height int
	if _, err := fmt.Sscanf(resolution, "%dx%d", &width, &height); err == nil {
		return int64(width), int64(height)
	}
	return 0, 0
}

func parseVariantType(
	variant *m3u8.Variant,
) (enums.MediaType, enums.MediaCodec, enums.MediaCodec) {
	var mediaType enums.MediaType
	var videoCodec, audioCodec enums.MediaCodec

	videoCodec = getVideoCodec(variant.Codecs)
	audioCodec = getAudioCodec(variant.Codecs)

	if videoCodec != "" {
		mediaType = enums.MediaTypeVideo
	} else if audioCodec != "" {
		mediaType = enums.MediaTypeAudio
	} else {
		mediaType = enums.MediaTypeVideo
	}

	return mediaType, videoCodec, audioCodec
}
