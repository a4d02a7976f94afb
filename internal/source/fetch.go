package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a fetch when Options.Timeout is unset.
const DefaultTimeout = 20 * time.Second

// maxBody caps downloaded sources at 32 MiB.
const maxBody = 32 << 20

// Fetch downloads url. Transport failures and non-2xx answers come back as
// *RetrievalError.
func Fetch(ctx context.Context, url string, opt Options) ([]byte, error) {
	client := opt.Client
	if client == nil {
		timeout := opt.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, &RetrievalError{Source: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s: %s", resp.Status, string(b))}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, &RetrievalError{Source: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(b) > maxBody {
		return nil, &RetrievalError{Source: url, Err: fmt.Errorf("body exceeds %d bytes", maxBody)}
	}
	return b, nil
}
