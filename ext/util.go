package ext

import (
	"context"
	"fmt"
	"slices"

	"mex/config"
	"mex/models"
	"mex/util"

	"go.uber.org/zap"
)

var maxRedirects = 5

// CtxByURL finds the first extractor whose pattern matches the URL and
// builds its extraction context. Redirect extractors are followed in place
// until a concrete one matches. A URL no extractor claims yields (nil, nil).
func CtxByURL(url string) (*models.ExtractionContext, error) {
	var redirectCount int

	currentURL := url

	for redirectCount <= maxRedirects {
		extractor := matchExtractor(currentURL)
		if extractor == nil {
			return nil, nil
		}

		matches := extractor.URLPattern.FindStringSubmatch(currentURL)
		groupNames := extractor.URLPattern.SubexpNames()

		groups := make(map[string]string)
		for i, name := range groupNames {
			if name != "" {
				groups[name] = matches[i]
			}
		}
		groups["match"] = matches[0]

		if extractor.URLPattern.SubexpIndex("id") >= 0 && groups["id"] == "" {
			return nil, fmt.Errorf(
				"%s matched %q: %w",
				extractor.CodeName, currentURL, util.ErrMissingURLGroup,
			)
		}

		ctx := &models.ExtractionContext{
			MatchedContentID:  groups["id"],
			MatchedContentURL: groups["match"],
			MatchedGroups:     groups,
			Extractor:         extractor,
		}

		if !extractor.IsRedirect {
			return ctx, nil
		}

		ctx.Context = context.Background()
		response, err := extractor.Run(ctx)
		if err != nil {
			return nil, err
		}
		if response.URL == "" {
			return nil, fmt.Errorf("no URL found in response")
		}

		currentURL = response.URL
		redirectCount++
	}
	return nil, util.ErrTooManyRedirects
}

func matchExtractor(url string) *models.Extractor {
	host, err := util.ExtractBaseHost(url)
	if err != nil {
		return nil
	}
	for _, extractor := range List {
		if len(extractor.Host) > 0 && !slices.Contains(extractor.Host, host) {
			continue
		}
		cfg := config.GetExtractorConfig(extractor)
		if cfg != nil && cfg.IsDisabled {
			continue
		}
		if extractor.URLPattern.MatchString(url) {
			return extractor
		}
	}
	return nil
}

func ByCodeName(codeName string) *models.Extractor {
	for _, extractor := range List {
		if extractor.CodeName == codeName {
			return extractor
		}
	}
	return nil
}

// ResolveEntries runs extraction for deferred URL entries in place, up to
// limit entries (zero means no limit). Entries that fail or that no
// extractor claims stay deferred; the host decides what to do with them.
func ResolveEntries(
	ctx context.Context,
	entries []*models.PlaylistEntry,
	limit int,
) {
	var resolved int
	for _, entry := range entries {
		if entry.URL == "" || entry.Media != nil || entry.Playlist != nil {
			continue
		}
		if limit > 0 && resolved >= limit {
			return
		}
		extractionCtx, err := CtxByURL(entry.URL)
		if err != nil || extractionCtx == nil {
			if err != nil {
				zap.S().Warnf("skipping playlist entry %s: %v", entry.URL, err)
			}
			continue
		}
		extractionCtx.Context = ctx
		response, err := extractionCtx.Extractor.Run(extractionCtx)
		if err != nil {
			zap.S().Warnf("failed to resolve playlist entry %s: %v", entry.URL, err)
			continue
		}
		switch {
		case response.Playlist != nil:
			entry.Playlist = response.Playlist
		case len(response.MediaList) > 0:
			entry.Media = response.MediaList[0]
		}
		resolved++
	}
}
