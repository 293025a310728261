package networking

import (
	"crypto/rand"
	"encoding/binary"
	"net"

	"mex/config"
	"mex/models"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RandomIPInBlock picks a uniformly random IPv4 address inside the given
// CIDR block.
func RandomIPInBlock(cidr string) (net.IP, error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ip block")
	}
	ip4 := ipNet.IP.To4()
	if ip4 == nil {
		return nil, errors.New("only IPv4 blocks are supported")
	}
	ones, bits := ipNet.Mask.Size()
	hostMask := uint32(uint64(1)<<(bits-ones) - 1)

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to read random bytes")
	}
	addr := binary.BigEndian.Uint32(ip4)&^hostMask |
		binary.BigEndian.Uint32(buf)&hostMask

	out := make(net.IP, net.IPv4len)
	binary.BigEndian.PutUint32(out, addr)
	return out, nil
}

// GeoVerificationHeaders fakes the requester's origin by advertising a
// random address from the site's home country block. An empty block means
// no spoofing and yields no headers.
func GeoVerificationHeaders(ipBlock string) map[string]string {
	if ipBlock == "" {
		return nil
	}
	ip, err := RandomIPInBlock(ipBlock)
	if err != nil {
		zap.S().Warnf("skipping geo verification headers: %v", err)
		return nil
	}
	return map[string]string{
		"X-Forwarded-For": ip.String(),
	}
}

// GetExtractorGeoHeaders returns the bypass headers configured for an
// extractor, or nil when no geo bypass block is set for it.
func GetExtractorGeoHeaders(extractor *models.Extractor) map[string]string {
	cfg := config.GetExtractorConfig(extractor)
	if cfg == nil {
		return nil
	}
	return GeoVerificationHeaders(cfg.GeoBypassIPBlock)
}
