package util

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"mex/logger"
	"mex/models"

	"github.com/bytedance/sonic"
)

const ChromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"

var json = sonic.ConfigFastest

// FetchPage performs a plain HTTP request and hands the response back to
// the caller, which owns closing the body.
func FetchPage(
	ctx context.Context,
	client models.HTTPClient,
	method string,
	rawURL string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ChromeUA)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// FetchBytes fetches rawURL and returns the whole body. A 404 or 410 is
// reported as ErrContentNotFound so extractors can surface missing content
// without inspecting status codes themselves.
func FetchBytes(
	ctx context.Context,
	client models.HTTPClient,
	method string,
	rawURL string,
	headers map[string]string,
) ([]byte, error) {
	resp, err := FetchPage(ctx, client, method, rawURL, nil, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusGone:
		return nil, ErrContentNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// debugging
	logger.WriteFile(dumpName(rawURL), data)

	return data, nil
}

var dumpNameRegex = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func dumpName(rawURL string) string {
	const maxLen = 120
	name := dumpNameRegex.ReplaceAllString(rawURL, "_")
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}

// FetchJSON fetches rawURL and decodes the body into target. When transform
// is non-nil it runs over the raw bytes first, so callers can repair broken
// payloads before decoding.
func FetchJSON(
	ctx context.Context,
	client models.HTTPClient,
	rawURL string,
	headers map[string]string,
	transform func([]byte) []byte,
	target any,
) error {
	data, err := FetchBytes(ctx, client, http.MethodGet, rawURL, headers)
	if err != nil {
		return err
	}
	if transform != nil {
		data = transform(data)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchXML is the XML counterpart of FetchJSON.
func FetchXML(
	ctx context.Context,
	client models.HTTPClient,
	rawURL string,
	headers map[string]string,
	transform func([]byte) []byte,
	target any,
) error {
	data, err := FetchBytes(ctx, client, http.MethodGet, rawURL, headers)
	if err != nil {
		return err
	}
	if transform != nil {
		data = transform(data)
	}
	if err := xml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetLocationURL reports where rawURL ends up after the client has run
// its redirect policy.
func GetLocationURL(
	ctx context.Context,
	client models.HTTPClient,
	rawURL string,
	headers map[string]string,
) (string, error) {
	resp, err := FetchPage(ctx, client, http.MethodGet, rawURL, nil, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	return resp.Request.URL.String(), nil
}
