package models

// SubtitleVariant is one representation of a caption track. Either URL
// points at the site's file, or Data carries a payload synthesized during
// extraction (e.g. cues converted to SRT); exactly one is set. A language
// may map to several variants, such as a native format plus a derived
// conversion.
type SubtitleVariant struct {
	Ext  string `json:"ext"`
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`
}
