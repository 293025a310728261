package networking

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"mex/config"
	"mex/models"
	"mex/util"

	"go.uber.org/zap"
)

var (
	defaultClient     *http.Client
	defaultClientOnce sync.Once
	extractorClients  = make(map[string]models.HTTPClient)
	extractorClientsM sync.Mutex
)

func GetDefaultHTTPClient() *http.Client {
	defaultClientOnce.Do(func() {
		defaultClient = &http.Client{
			Transport: GetBaseTransport(),
			Timeout:   60 * time.Second,
		}
	})
	return defaultClient
}

func GetBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   100,
		MaxConnsPerHost:       100,
		ResponseHeaderTimeout: 10 * time.Second,
		DisableCompression:    false,
	}
}

// GetExtractorHTTPClient returns the client an extractor should fetch with.
// A client pinned on the extractor itself wins, then any per-extractor
// configuration, then the shared default client.
func GetExtractorHTTPClient(extractor *models.Extractor) models.HTTPClient {
	if extractor.Client != nil {
		return extractor.Client
	}

	extractorClientsM.Lock()
	defer extractorClientsM.Unlock()

	if client, exists := extractorClients[extractor.CodeName]; exists {
		return client
	}

	cfg := config.GetExtractorConfig(extractor)
	if cfg == nil {
		return GetDefaultHTTPClient()
	}

	var client models.HTTPClient

	if cfg.EdgeProxyURL != "" {
		client = NewEdgeProxyClientFromConfig(cfg)
	} else {
		client = NewClientFromConfig(extractor.CodeName, cfg)
	}
	extractorClients[extractor.CodeName] = client

	return client
}

func NewClientFromConfig(
	codeName string,
	cfg *models.ExtractorConfig,
) *http.Client {
	client := &http.Client{
		Timeout: 60 * time.Second,
	}
	if cfg.HTTP3 {
		client.Transport = NewHTTP3Transport()
	} else {
		transport := GetBaseTransport()
		if cfg.HTTPProxy != "" || cfg.HTTPSProxy != "" {
			configureProxyTransport(transport, cfg)
		}
		client.Transport = transport
	}
	// an explicit cookie_file wins, otherwise the conventional
	// cookies/<codename>.txt jar is picked up when present
	cookieFile := cfg.CookieFile
	if cookieFile == "" {
		cookieFile = codeName + ".txt"
	}
	jar, err := newCookieJar(codeName, cookieFile)
	switch {
	case err == nil:
		client.Jar = jar
	case cfg.CookieFile != "":
		zap.S().Warnf("failed to load cookies for %s: %v", codeName, err)
	}
	return client
}

func newCookieJar(codeName string, fileName string) (http.CookieJar, error) {
	cookies, err := util.ParseCookieFile(fileName)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*http.Cookie)
	for _, cookie := range cookies {
		grouped[cookie.Domain] = append(grouped[cookie.Domain], cookie)
	}
	for domain, domainCookies := range grouped {
		jar.SetCookies(&url.URL{
			Scheme: "https",
			Host:   strings.TrimPrefix(domain, "."),
		}, domainCookies)
	}
	zap.S().Debugf("loaded %d cookies for %s", len(cookies), codeName)
	return jar, nil
}
