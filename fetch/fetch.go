package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies this client to the bundle host. Callers can override
// it through the headers argument.
const userAgent = "vicrail-fetch/1.0"

type GetOptions struct {
	// MaxSize bounds the response body. Bodies over the limit are an error,
	// not truncated, since a partial bundle would only fail later and more
	// confusingly.
	MaxSize int

	Timeout  time.Duration
	Cache    bool
	CacheTTL time.Duration
}

// Downloader retrieves manifest and bundle files, optionally caching them
// between refresh checks.
type Downloader interface {
	Get(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error)
}

// HTTPGet downloads a single file with no caching. Cache-aware Downloaders
// call it on a miss.
func HTTPGet(ctx context.Context, url string, headers map[string]string, options GetOptions) ([]byte, error) {
	client := &http.Client{
		Timeout: options.Timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting %s: status %d", url, resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if options.MaxSize > 0 {
		reader = io.LimitReader(resp.Body, int64(options.MaxSize)+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}
	if options.MaxSize > 0 && len(body) > options.MaxSize {
		return nil, fmt.Errorf("body of %s exceeds %d bytes", url, options.MaxSize)
	}

	return body, nil
}
