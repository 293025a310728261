package models

type EnvConfig struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	HTTPSProxy string
	HTTPProxy  string
	NoProxy    string

	LogLevel string
	LogFile  bool

	Caching bool
}

// ExtractorConfig holds per-site overrides loaded from ext-cfg.yaml,
// keyed by extractor codename.
type ExtractorConfig struct {
	HTTPProxy        string `yaml:"http_proxy"`
	HTTPSProxy       string `yaml:"https_proxy"`
	NoProxy          string `yaml:"no_proxy"`
	EdgeProxyURL     string `yaml:"edge_proxy_url"`
	HTTP3            bool   `yaml:"http3"`
	CookieFile       string `yaml:"cookie_file"`
	GeoBypassIPBlock string `yaml:"geo_bypass_ip_block"`

	IsDisabled bool `yaml:"disabled"`
}
