package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"

	"github.com/pkg/errors"
	"github.com/unki2aut/go-mpd"
)

// ParseMPDContent expands a DASH manifest into one format candidate per
// representation of the first period.
func ParseMPDContent(content []byte, baseURL string) ([]*models.MediaFormat, error) {
	baseURLObj, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	mpdDoc := &mpd.MPD{}
	if err := mpdDoc.Decode(content); err != nil {
		return nil, fmt.Errorf("failed parsing MPD: %w", err)
	}

	if len(mpdDoc.Period) == 0 {
		return nil, errors.New("no periods found in mpd")
	}
	period := mpdDoc.Period[0]
	if len(period.AdaptationSets) == 0 {
		return nil, errors.New("no adaptation sets found in period")
	}

	mpdBaseURL := resolveMPDBaseURL(baseURLObj, mpdDoc.BaseURL)
	periodBaseURL := resolveMPDBaseURL(mpdBaseURL, period.BaseURL)

	var formats []*models.MediaFormat
	for _, adaptationSet := range period.AdaptationSets {
		if adaptationSet == nil {
			continue
		}
		setBaseURL := resolveMPDBaseURL(periodBaseURL, adaptationSet.BaseURL)
		for _, representation := range adaptationSet.Representations {
			if representation.ID == nil || representation.Bandwidth == nil {
				continue
			}
			formats = append(formats, parseRepresentation(
				representation, adaptationSet, setBaseURL,
			))
		}
	}
	return formats, nil
}

// ParseMPDFromURL fetches a DASH manifest with the extractor's client and
// expands it.
func ParseMPDFromURL(
	ctx context.Context,
	client models.HTTPClient,
	rawURL string,
	headers map[string]string,
) ([]*models.MediaFormat, error) {
	body, err := util.FetchBytes(ctx, client, http.MethodGet, rawURL, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch MPD content: %w", err)
	}
	return ParseMPDContent(body, rawURL)
}

func parseRepresentation(
	representation mpd.Representation,
	adaptationSet *mpd.AdaptationSet,
	baseURL *url.URL,
) *models.MediaFormat {
	mediaType, videoCodec, audioCodec := parseAdaptationSetType(adaptationSet, representation)

	var width, height int64
	if representation.Width != nil {
		width = int64(*representation.Width)
	}
	if representation.Height != nil {
		height = int64(*representation.Height)
	}

	return &models.MediaFormat{
		FormatID:   fmt.Sprintf("dash-%d", *representation.Bandwidth/1000),
		Type:       mediaType,
		Ext:        "mp4",
		VideoCodec: videoCodec,
		AudioCodec: audioCodec,
		Bitrate:    int64(*representation.Bandwidth),
		Width:      width,
		Height:     height,
		URL:        resolveMPDBaseURL(baseURL, representation.BaseURL).String(),
	}
}

func parseAdaptationSetType(
	adaptationSet *mpd.AdaptationSet,
	representation mpd.Representation,
) (enums.MediaType, enums.MediaCodec, enums.MediaCodec) {
	var codecs string
	if representation.Codecs != nil {
		codecs = *representation.Codecs
	} else if adaptationSet.Codecs != nil {
		codecs = *adaptationSet.Codecs
	}

	videoCodec := getVideoCodec(codecs)
	audioCodec := getAudioCodec(codecs)

	mimeType := strings.ToLower(adaptationSet.MimeType)
	var mediaType enums.MediaType

	switch {
	case strings.HasPrefix(mimeType, "video/") || videoCodec != "":
		mediaType = enums.MediaTypeVideo
	case strings.HasPrefix(mimeType, "audio/") || audioCodec != "":
		mediaType = enums.MediaTypeAudio
	case adaptationSet.ContentType != nil:
		contentType := strings.ToLower(*adaptationSet.ContentType)
		if contentType == "video" {
			mediaType = enums.MediaTypeVideo
		} else if contentType == "audio" {
			mediaType = enums.MediaTypeAudio
		}
	}

	return mediaType, videoCodec, audioCodec
}

func resolveMPDBaseURL(baseURL *url.URL, baseURLs []*mpd.BaseURL) *url.URL {
	if len(baseURLs) > 0 && baseURLs[0] != nil && baseURLs[0].Value != "" {
		if resolved, err := url.Parse(baseURLs[0].Value); err == nil {
			return baseURL.ResolveReference(resolved)
		}
	}
	return baseURL
}
