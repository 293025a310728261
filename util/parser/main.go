package parser

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"
)

// ParseManifest expands a streaming manifest into format candidates,
// dispatching on the manifest kind baked into the URL.
func ParseManifest(
	ctx context.Context,
	client models.HTTPClient,
	manifestURL string,
	headers map[string]string,
) ([]*models.MediaFormat, error) {
	switch util.DetermineExt(manifestURL, "") {
	case "m3u8":
		return ParseM3U8FromURL(ctx, client, manifestURL, headers)
	case "mpd":
		return ParseMPDFromURL(ctx, client, manifestURL, headers)
	}
	return nil, fmt.Errorf("unsupported manifest: %s", manifestURL)
}

func getVideoCodec(codecs string) enums.MediaCodec {
	codecs = strings.ToLower(codecs)
	switch {
	case strings.Contains(codecs, "avc") || strings.Contains(codecs, "h264"):
		return enums.MediaCodecAVC
	case strings.Contains(codecs, "hvc") || strings.Contains(codecs, "h265") || strings.Contains(codecs, "hev1"):
		return enums.MediaCodecHEVC
	case strings.Contains(codecs, "av01"):
		return enums.MediaCodecAV1
	case strings.Contains(codecs, "vp9"):
		return enums.MediaCodecVP9
	case strings.Contains(codecs, "vp8"):
		return enums.MediaCodecVP8
	default:
		return ""
	}
}

func getAudioCodec(codecs string) enums.MediaCodec {
	codecs = strings.ToLower(codecs)
	switch {
	case strings.Contains(codecs, "mp4a"):
		return enums.MediaCodecAAC
	case strings.Contains(codecs, "opus"):
		return enums.MediaCodecOpus
	case strings.Contains(codecs, "mp3"):
		return enums.MediaCodecMP3
	case strings.Contains(codecs, "flac"):
		return enums.MediaCodecFLAC
	case strings.Contains(codecs, "vorbis"):
		return enums.MediaCodecVorbis
	default:
		return ""
	}
}

func resolveURL(base *url.URL, uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	ref, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return base.ResolveReference(ref).String()
}
