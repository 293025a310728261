package main

import (
	"context"
	"fmt"
	"os"

	"mex/config"
	"mex/database"
	"mex/enums"
	"mex/ext"
	"mex/logger"
	"mex/models"
	"mex/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

func main() {
	// bootstrap logger first so config loading failures are visible,
	// then re-init once the configured level is known
	logger.Init("info", "")
	config.Load()

	logFile := ""
	if config.Env.LogFile {
		logFile = "mex.log"
	}
	logger.Init(config.Env.LogLevel, logFile)
	defer logger.Sync()

	if len(os.Args) != 2 {
		zap.S().Fatalf("usage: %s <url>", os.Args[0])
	}
	url := os.Args[1]

	zap.S().Debugf("loaded %d extractors", len(ext.List))

	if config.Env.Caching {
		database.Start()
	}

	extractionCtx, err := ext.CtxByURL(url)
	if err != nil {
		zap.S().Fatalf("failed to resolve url: %v", err)
	}
	if extractionCtx == nil {
		zap.S().Fatalf("no extractor matches %s", url)
	}
	extractionCtx.Context = context.Background()

	extractor := extractionCtx.Extractor
	zap.S().Infof("dispatching %s to %s", url, extractor.CodeName)

	useCache := config.Env.Caching &&
		extractor.Type == enums.ExtractorTypeSingle

	if useCache {
		cached, err := database.GetDefaultMedias(
			extractor.CodeName, extractionCtx.MatchedContentID)
		if err != nil {
			zap.S().Warnf("cache lookup failed: %v", err)
		} else if len(cached) > 0 {
			zap.S().Debugf("cache hit for %s", extractionCtx.MatchedContentID)
			printResponse(&models.ExtractorResponse{MediaList: cached})
			return
		}
	}

	response, err := extractor.Run(extractionCtx)
	if err != nil {
		if util.IsGeoRestricted(err) {
			zap.S().Fatalf("extraction blocked: %v", err)
		}
		zap.S().Fatalf("extraction failed: %v", err)
	}

	if useCache && len(response.MediaList) > 0 {
		if err := database.StoreMedias(response.MediaList); err != nil {
			zap.S().Warnf("failed to cache result: %v", err)
		}
	}

	printResponse(response)
}

func printResponse(response *models.ExtractorResponse) {
	var result any
	switch {
	case response.Playlist != nil:
		result = response.Playlist
	default:
		result = response.MediaList
	}
	output, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		zap.S().Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(output))
}
