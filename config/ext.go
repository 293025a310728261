package config

import (
	"fmt"
	"maps"
	"os"

	"mex/models"

	"gopkg.in/yaml.v3"
)

const extConfigPath = "ext-cfg.yaml"

var extractorConfigs = make(map[string]*models.ExtractorConfig)

// LoadExtractorConfigs reads per-site overrides from ext-cfg.yaml, keyed by
// extractor codename. A missing file just means no overrides.
func LoadExtractorConfigs() error {
	extractorConfigs = make(map[string]*models.ExtractorConfig)

	_, err := os.Stat(extConfigPath)
	if os.IsNotExist(err) {
		return nil
	}
	data, err := os.ReadFile(extConfigPath)
	if err != nil {
		return fmt.Errorf("failed reading config file: %w", err)
	}

	var rawConfig map[string]*models.ExtractorConfig

	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return fmt.Errorf("failed parsing config file: %w", err)
	}
	maps.Copy(extractorConfigs, rawConfig)

	return nil
}

func GetExtractorConfig(extractor *models.Extractor) *models.ExtractorConfig {
	if config, exists := extractorConfigs[extractor.CodeName]; exists {
		return config
	}
	return nil
}

// SetExtractorConfig pins an override at runtime, mainly for tests.
func SetExtractorConfig(codeName string, cfg *models.ExtractorConfig) {
	extractorConfigs[codeName] = cfg
}
