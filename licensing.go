// Package licensing verifies license keys against a remote license server.
//
//	c, err := licensing.New(licensing.Config{BaseURL: "https://licensing.example.com"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := c.Check(ctx, key); err != nil {
//		log.Fatalln("license check failed:", err)
//	}
package licensing

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/ideatocode/go-license-client/internal/sl"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client talks to one license server. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *slog.Logger
}

// Option customises a Client built by New.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client built from Config, including its
// timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger. Clients log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a Client from cfg. A single trailing slash on BaseURL is dropped.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.BaseURL == "" {
		return nil, eris.New("license server base url is required")
	}
	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid license server url %q", cfg.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, eris.Errorf("unsupported license server scheme %q", u.Scheme)
	}

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Transport: tr,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Verify asks the server about key. It never fails: transport, status and
// decoding problems come back as a Result with StatusError, a Message
// describing the failure and Err set to the classified error.
func (c *Client) Verify(ctx context.Context, key string) Result {
	endpoint := c.baseURL + "/verify/" + url.PathEscape(key)
	reqID := uuid.NewString()
	log := c.log.With(slog.String("request_id", reqID))

	code, body, err := c.get(ctx, endpoint, reqID)
	if err != nil {
		log.Warn("license server unreachable", sl.Err(err))
		return errorResult(err)
	}
	if code != http.StatusOK {
		err = eris.Wrapf(ErrHTTPStatus, "status code %d", code)
		log.Warn("license server returned an error status", slog.Int("status_code", code))
		return errorResult(err)
	}

	res, err := parseResult(body)
	if err != nil {
		log.Warn("license server response rejected", sl.Err(err))
		return errorResult(err)
	}
	log.Debug("license verified", slog.String("status", string(res.Status)))
	return res
}

// IsValid reports whether the server considers key valid.
func (c *Client) IsValid(ctx context.Context, key string) bool {
	return c.Verify(ctx, key).Valid()
}

// Check returns nil when key is valid. Every other outcome is an error that
// matches one of the package's Err values with errors.Is.
func (c *Client) Check(ctx context.Context, key string) error {
	res := c.Verify(ctx, key)
	if !res.Status.Known() {
		return eris.Wrapf(ErrUnknownStatus, "status %q", res.Status)
	}
	switch res.Status {
	case StatusValid:
		return nil
	case StatusExpired:
		return withServerMessage(ErrExpired, res)
	case StatusDisabled:
		return withServerMessage(ErrDisabled, res)
	case StatusNotFound:
		return withServerMessage(ErrNotFound, res)
	}
	// StatusError: local failures carry Err, server-reported ones do not.
	if res.Err != nil {
		return res.Err
	}
	return withServerMessage(ErrServer, res)
}

func withServerMessage(sentinel error, res Result) error {
	if res.Message == nil || *res.Message == "" {
		return sentinel
	}
	return eris.Wrap(sentinel, *res.Message)
}

// Health is the server's self-reported state.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Database  string `json:"database,omitempty"`
}

// Health queries the server's health endpoint. Unlike Verify it returns
// failures as errors.
func (c *Client) Health(ctx context.Context) (Health, error) {
	code, body, err := c.get(ctx, c.baseURL+"/health", uuid.NewString())
	if err != nil {
		return Health{}, err
	}
	if code != http.StatusOK {
		return Health{}, eris.Wrapf(ErrHTTPStatus, "status code %d", code)
	}
	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return Health{}, eris.Wrap(ErrParse, err.Error())
	}
	return h, nil
}

func (c *Client) get(ctx context.Context, endpoint, reqID string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, eris.Wrap(ErrTransport, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, eris.Wrap(ErrTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return resp.StatusCode, nil, eris.Wrap(ErrTransport, err.Error())
	}
	if len(body) > maxResponseBytes {
		return resp.StatusCode, nil, eris.Wrapf(ErrParse, "response body exceeds %d bytes", maxResponseBytes)
	}
	return resp.StatusCode, body, nil
}
