package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"watty-downloader/model"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type ClientOptions struct {
	Timeout          time.Duration
	UserAgent        string
	RollingUserAgent bool
	CloudflareBypass bool
	Logger           *Logger
}

func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:          30 * time.Second,
		RollingUserAgent: true,
	}
}

// RestyClient is the default model.Fetcher. One client, and so one
// connection pool, is kept for its whole lifetime.
type RestyClient struct {
	client    *resty.Client
	userAgent func() string
	log       *Logger
}

func NewRestyClient(opts ClientOptions) *RestyClient {
	client := resty.New()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	if opts.CloudflareBypass {
		client.SetTransport(cloudflarebp.AddCloudFlareByPass(transport))
	} else {
		client.SetTransport(transport)
	}

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.Logger != nil {
		client.SetLogger(opts.Logger)
	} else {
		client.SetLogger(disableLogger{})
	}
	client.SetHeader("Accept-Charset", "utf-8")

	return &RestyClient{
		client:    client,
		userAgent: PickUserAgent(opts.UserAgent, opts.RollingUserAgent),
		log:       opts.Logger,
	}
}

// R starts a request carrying a freshly picked User-Agent.
func (c *RestyClient) R(ctx context.Context) *resty.Request {
	return c.client.R().SetContext(ctx).SetHeader("User-Agent", c.userAgent())
}

func (c *RestyClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.R(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get %v: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, &model.HTTPError{
			Url:        url,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}
	c.log.Debugf("[%d] %s", resp.StatusCode(), url)

	return resp.Body(), nil
}

func (c *RestyClient) FetchText(ctx context.Context, url string) (string, error) {
	body, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(body), "�"), nil
}
