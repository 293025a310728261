package rai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"
	"mex/util/networking"
	"mex/util/parser"

	"go.uber.org/zap"
)

// The relinker only answers with a usable manifest when asked per
// platform, so every platform is queried and the candidates merged.
var relinkerPlatforms = []string{"mon", "flash", "native"}

var httpURLRegex = regexp.MustCompile(`^https?://`)

type relinkerInfo struct {
	Formats  []*models.MediaFormat
	IsLive   bool
	Duration float64
}

type relinkerResponse struct {
	Geoprotection string        `xml:"geoprotection"`
	IsLive        string        `xml:"is_live"`
	Duration      string        `xml:"duration"`
	Bitrate       string        `xml:"bitrate"`
	URLs          []relinkerURL `xml:"url"`
}

type relinkerURL struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

func (r *relinkerResponse) contentURL() string {
	for _, u := range r.URLs {
		if u.Type == "content" {
			return strings.TrimSpace(u.Value)
		}
	}
	return ""
}

func (r *relinkerResponse) bitrateKbps() int64 {
	bitrate, err := strconv.ParseInt(strings.TrimSpace(r.Bitrate), 10, 64)
	if err != nil {
		return 0
	}
	return bitrate
}

// extractRelinkerInfo resolves a relinker URL into playable formats.
// Metadata (is_live, duration, geoprotection) is accumulated across
// platform responses, first non-empty value wins.
func extractRelinkerInfo(
	ctx *models.ExtractionContext,
	client models.HTTPClient,
	relinkerURL string,
) (*relinkerInfo, error) {
	if !httpURLRegex.MatchString(relinkerURL) {
		return &relinkerInfo{
			Formats: []*models.MediaFormat{{
				FormatID: "direct",
				Type:     enums.MediaTypeVideo,
				URL:      relinkerURL,
				Ext:      util.DetermineExt(relinkerURL, "mp4"),
			}},
		}, nil
	}

	headers := networking.GetExtractorGeoHeaders(ctx.Extractor)

	info := &relinkerInfo{}
	var geoprotection bool

	for _, platform := range relinkerPlatforms {
		platformURL := util.UpdateURLQuery(relinkerURL, map[string]string{
			"output": "45",
			"pl":     platform,
		})
		var resp relinkerResponse
		err := util.FetchXML(
			ctx.Context, client, platformURL,
			headers, util.FixAmpersands, &resp,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to fetch relinker for platform %s: %w",
				platform, err)
		}

		if !geoprotection {
			geoprotection = strings.TrimSpace(resp.Geoprotection) == "Y"
		}
		if !info.IsLive {
			info.IsLive = strings.TrimSpace(resp.IsLive) == "Y"
		}
		if info.Duration == 0 {
			info.Duration = util.ParseDurationString(resp.Duration)
		}

		mediaURL := resp.contentURL()
		if mediaURL == "" {
			continue
		}
		// placeholder clip served instead of an error
		if strings.Contains(mediaURL, "/video_no_available.mp4") {
			continue
		}

		ext := util.DetermineExt(mediaURL, "")
		if (ext == "m3u8" && platform != "mon") ||
			(ext == "f4m" && platform != "flash") {
			continue
		}

		switch {
		case ext == "m3u8" ||
			strings.Contains(mediaURL, "format=m3u8") ||
			platform == "mon":
			formats, err := parser.ParseM3U8FromURL(
				ctx.Context, client, mediaURL, headers)
			if err != nil {
				zap.S().Warnf(
					"failed to expand hls playlist %s: %v",
					mediaURL, err)
				continue
			}
			info.Formats = append(info.Formats, formats...)
		case ext == "f4m" || platform == "flash":
			manifestURL := util.UpdateURLQuery(
				strings.Replace(
					mediaURL,
					"manifest#live_hds.f4m", "manifest.f4m", 1,
				),
				map[string]string{
					"hdcore": "3.7.0",
					"plugin": "aasp-3.7.0.39.44",
				},
			)
			info.Formats = append(info.Formats, &models.MediaFormat{
				FormatID: "hds",
				Type:     enums.MediaTypeVideo,
				URL:      manifestURL,
				Ext:      "flv",
			})
		default:
			bitrate := resp.bitrateKbps()
			formatID := "http"
			if bitrate > 0 {
				formatID = fmt.Sprintf("http-%d", bitrate)
			}
			info.Formats = append(info.Formats, &models.MediaFormat{
				FormatID: formatID,
				Type:     enums.MediaTypeVideo,
				URL:      mediaURL,
				Ext:      util.DetermineExt(mediaURL, "mp4"),
				Bitrate:  bitrate * 1000,
			})
		}
	}

	if len(info.Formats) == 0 {
		if geoprotection {
			return nil, util.NewGeoRestrictedError([]string{"IT"})
		}
		return nil, util.ErrNoFormatsFound
	}
	return info, nil
}
