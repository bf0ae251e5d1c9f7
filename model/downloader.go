package model

import "context"

// Fetcher issues GET requests. Both methods fail with *HTTPError when the
// response status is not a success.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	// FetchText returns the body decoded as UTF-8.
	FetchText(ctx context.Context, url string) (string, error)
}
