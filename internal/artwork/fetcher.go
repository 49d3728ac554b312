// Package artwork turns a reconciled artwork URL into the small icon file
// rendered next to the indicator title.
package artwork

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const _maxImageSize = 10 * 1024 * 1024 // 10 MB

// Fetcher loads raw artwork bytes. It understands the three URL shapes the
// normalizer can emit: http(s) URLs, data URIs, and file:// paths.
type Fetcher struct {
	logger *zap.Logger
	client *http.Client
}

// NewFetcher creates an artwork fetcher.
func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch returns the raw image bytes behind url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "data:"):
		return decodeDataURI(url)
	case strings.HasPrefix(url, "file://"):
		return readLocalFile(strings.TrimPrefix(url, "file://"))
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return f.fetchHTTP(ctx, url)
	}
	return nil, fmt.Errorf("unsupported artwork url scheme: %q", url)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "nowplaying/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil, fmt.Errorf("url is not an image: %s", resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, _maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	f.logger.Debug("Artwork fetched", zap.Int("bytes", len(data)), zap.String("url", url))
	return data, nil
}

// decodeDataURI extracts the base64 image bytes from a data URI.
func decodeDataURI(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data uri")
	}
	meta, encoded := uri[:comma], uri[comma+1:]
	if !strings.Contains(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data uri encoding: %s", meta)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Some providers omit padding.
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return data, nil
}

func readLocalFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat artwork file: %w", err)
	}
	if info.Size() > _maxImageSize {
		return nil, fmt.Errorf("artwork file exceeds %d bytes", _maxImageSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artwork file: %w", err)
	}
	return data, nil
}
