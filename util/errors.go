package util

import (
	"errors"
	"fmt"
	"strings"
)

type Error struct {
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

var (
	ErrContentNotFound  = &Error{Message: "content not found"}
	ErrUnavailable      = &Error{Message: "this content is unavailable"}
	ErrUpstreamFormat   = &Error{Message: "site returned markup that could not be repaired"}
	ErrNotMediaFile     = &Error{Message: "not a media file"}
	ErrNoFormatsFound   = &Error{Message: "no downloadable formats found"}
	ErrMissingURLGroup  = &Error{Message: "matched URL is missing a required pattern group"}
	ErrTooManyRedirects = &Error{Message: "exceeded maximum number of redirects"}
)

// GeoRestrictedError marks content the site refuses to serve to the
// requester's region. It is distinct from a plain not-found so the caller
// can retry through a bypass mechanism against the allowed countries.
type GeoRestrictedError struct {
	Countries []string
}

func (err *GeoRestrictedError) Error() string {
	if len(err.Countries) == 0 {
		return "this content is not available in your region"
	}
	return fmt.Sprintf(
		"this content is available only in: %s",
		strings.Join(err.Countries, ", "),
	)
}

func NewGeoRestrictedError(countries []string) *GeoRestrictedError {
	return &GeoRestrictedError{Countries: countries}
}

func IsGeoRestricted(err error) bool {
	var geoErr *GeoRestrictedError
	return errors.As(err, &geoErr)
}
