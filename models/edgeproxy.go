package models

// EdgeProxyResponse is the envelope returned by an edge-proxy worker:
// the upstream response re-encoded as JSON, used for region-bypass
// probing of geo-fenced endpoints.
type EdgeProxyResponse struct {
	URL        string            `json:"url"`
	StatusCode int               `json:"status_code"`
	Text       string            `json:"text"`
	Headers    map[string]string `json:"headers"`
	Cookies    []string          `json:"cookies"`
}
