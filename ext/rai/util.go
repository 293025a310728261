package rai

import (
	"strings"

	"mex/enums"
	"mex/models"
	"mex/util"

	"github.com/tidwall/gjson"
)

// extractSubtitles collects caption references from a media JSON node.
// Rai spreads them over a subtitlesArray plus two legacy string keys, and
// every STL reference has an SRT rendition living next to it.
func extractSubtitles(
	pageURL string,
	data gjson.Result,
) map[string][]*models.SubtitleVariant {
	type subRef struct {
		lang string
		url  string
	}
	var refs []subRef

	for _, entry := range data.Get("subtitlesArray").Array() {
		if entry.Get("url").Type != gjson.String {
			continue
		}
		refs = append(refs, subRef{
			lang: entry.Get("language").String(),
			url:  entry.Get("url").String(),
		})
	}
	for _, key := range []string{"subtitles", "subtitlesUrl"} {
		if value := data.Get(key); value.Type == gjson.String {
			refs = append(refs, subRef{url: value.String()})
		}
	}

	subtitles := make(map[string][]*models.SubtitleVariant)
	for _, ref := range refs {
		if ref.url == "" {
			continue
		}
		lang := ref.lang
		if lang == "" {
			lang = "it"
		}
		subURL := util.ResolveURL(pageURL, ref.url)
		ext := util.DetermineExt(subURL, "srt")
		subtitles[lang] = append(subtitles[lang], &models.SubtitleVariant{
			Ext: ext,
			URL: subURL,
		})
		if ext == "stl" {
			subtitles[lang] = append(subtitles[lang], &models.SubtitleVariant{
				Ext: "srt",
				URL: strings.TrimSuffix(subURL, "stl") + "srt",
			})
		}
	}
	if len(subtitles) == 0 {
		return nil
	}
	return subtitles
}

func audioCodecForExt(ext string) enums.MediaCodec {
	switch strings.ToLower(ext) {
	case "mp3":
		return enums.MediaCodecMP3
	case "m4a", "aac":
		return enums.MediaCodecAAC
	case "flac":
		return enums.MediaCodecFLAC
	case "ogg", "opus":
		return enums.MediaCodecOpus
	}
	return ""
}
