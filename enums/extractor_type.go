package enums

type ExtractorType string

const (
	ExtractorTypeSingle   ExtractorType = "single"
	ExtractorTypePlaylist ExtractorType = "playlist"
	ExtractorTypeRedirect ExtractorType = "redirect"
)
