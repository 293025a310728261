package livestreamfails

// clipResponse is the payload of api.livestreamfails.com/clip/<id>.
// videoId and imageId address the CDN, sourceId is the clip's id on the
// originating platform.
type clipResponse struct {
	Label     string `json:"label"`
	SourceID  string `json:"sourceId"`
	VideoID   string `json:"videoId"`
	ImageID   string `json:"imageId"`
	CreatedAt string `json:"createdAt"`
	Streamer  struct {
		Label string `json:"label"`
	} `json:"streamer"`
}
