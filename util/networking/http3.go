package networking

import (
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"
)

// NewHTTP3Transport builds a QUIC transport for sites that degrade or
// fingerprint plain TCP clients.
func NewHTTP3Transport() *http3.Transport {
	return &http3.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS13,
		},
		QUICConfig: &quic.Config{
			MaxIdleTimeout:  90 * time.Second,
			KeepAlivePeriod: 30 * time.Second,
		},
	}
}
