// Package algoclient calls the remote scoring, projection and strategy
// services with a generated patrimony document.
package algoclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"

	"patrimony-engine/internal/config"
)

const (
	defaultTimeout      = 2 * time.Minute
	defaultPollInterval = 5 * time.Second
)

// ErrNotConfigured is returned when the endpoint of a call is empty.
var ErrNotConfigured = errors.New("algo endpoint not configured")

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("algo call %s: status %d: %s", e.URL, e.Status, e.Body)
}

// Response is the decoded answer of a service.
type Response struct {
	Output     any
	RequestID  string
	RequestKey string
	Elapsed    time.Duration
}

type Client struct {
	hc     *fasthttp.Client
	cfg    config.AlgoConfig
	signer *v4.Signer
	creds  *aws.Credentials
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Client)

// WithDial routes every connection through dial, e.g. an in-memory listener.
func WithDial(dial func(addr string) (net.Conn, error)) Option {
	return func(c *Client) { c.hc.Dial = dial }
}

// WithClock replaces the clock used for signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(cfg config.AlgoConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		hc: &fasthttp.Client{
			Name:                "patsim",
			MaxConnsPerHost:     16,
			MaxIdleConnDuration: 90 * time.Second,
		},
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		c.signer = v4.NewSigner()
		c.creds = &aws.Credentials{
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			SessionToken:    cfg.AWS.SessionToken,
			Source:          "patsim-config",
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	DataCtxt any `json:"data_ctxt"`
}

// FillScore sends a patrimony document to the fill-score service and returns
// its completed version.
func (c *Client) FillScore(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.post(ctx, c.cfg.FillScoreURL, payload)
}

// Project sends a completed document to the projection service, which
// stores the projection and answers with its requestId and requestKey.
func (c *Client) Project(ctx context.Context, filled any) (*Response, error) {
	return c.post(ctx, c.cfg.ProjectionURL, filled)
}

// InitStrategy starts a strategy computation for a stored projection.
func (c *Client) InitStrategy(ctx context.Context, req StrategyRequest) (*Response, error) {
	return c.post(ctx, c.cfg.InitStrategyURL, req)
}

// PollStrategy waits for the result of a strategy computation, retrying
// every PollInterval while the service answers 202.
func (c *Client) PollStrategy(ctx context.Context, requestID string) (*Response, error) {
	if c.cfg.PollStrategyURL == "" {
		return nil, ErrNotConfigured
	}
	url := c.cfg.PollStrategyURL + "/" + requestID
	interval := c.cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	start := time.Now()

	for attempt := 1; ; attempt++ {
		status, body, err := c.do(ctx, fasthttp.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		switch status {
		case fasthttp.StatusOK:
			resp, err := decode(body)
			if err != nil {
				return nil, errors.Wrapf(err, "decode %s", url)
			}
			resp.Elapsed = time.Since(start)
			return resp, nil
		case fasthttp.StatusAccepted:
			c.logger.Debug("strategy still processing",
				slog.String("request_id", requestID),
				slog.Int("attempt", attempt))
		default:
			return nil, &StatusError{URL: url, Status: status, Body: snippet(body)}
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "poll strategy")
		case <-time.After(interval):
		}
	}
}

func (c *Client) post(ctx context.Context, url string, data any) (*Response, error) {
	if url == "" {
		return nil, ErrNotConfigured
	}
	body, err := json.Marshal(envelope{DataCtxt: data})
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	start := time.Now()
	status, respBody, err := c.do(ctx, fasthttp.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &StatusError{URL: url, Status: status, Body: snippet(respBody)}
	}

	resp, err := decode(respBody)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", url)
	}
	resp.Elapsed = time.Since(start)
	c.logger.Info("algo call done",
		slog.String("url", url),
		slog.Int("status", status),
		slog.Duration("elapsed", resp.Elapsed))
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, errors.Wrap(err, "algo call")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(url)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}
	if err := c.sign(ctx, req, method, url, body); err != nil {
		return 0, nil, err
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	deadline := time.Now().Add(timeout)
	ctxDeadline := false
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline, ctxDeadline = d, true
	}
	if err := c.hc.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, nil, errors.Wrapf(ctxErr, "%s %s", method, url)
		}
		if ctxDeadline && errors.Is(err, fasthttp.ErrTimeout) {
			return 0, nil, errors.Wrapf(context.DeadlineExceeded, "%s %s", method, url)
		}
		return 0, nil, errors.Wrapf(err, "%s %s", method, url)
	}
	return resp.StatusCode(), append([]byte(nil), resp.Body()...), nil
}

// sign adds SigV4 headers for the execute-api service. The signer works on
// net/http requests, so the signature is computed on a mirror request.
func (c *Client) sign(ctx context.Context, req *fasthttp.Request, method, url string, body []byte) error {
	if c.signer == nil {
		return nil
	}
	mirror, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build signing request")
	}
	if body != nil {
		mirror.Header.Set("Content-Type", "application/json")
	}

	sum := sha256.Sum256(body)
	if err := c.signer.SignHTTP(ctx, *c.creds, mirror, hex.EncodeToString(sum[:]), c.cfg.AWS.Service, c.cfg.AWS.Region, c.now()); err != nil {
		return errors.Wrap(err, "sign request")
	}
	for key, values := range mirror.Header {
		if len(values) > 0 {
			req.Header.Set(key, values[0])
		}
	}
	return nil
}

func decode(body []byte) (*Response, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	resp := &Response{Output: doc}
	if out, err := jsonpath.Get("$.output", doc); err == nil {
		resp.Output = out
	}
	resp.RequestID = lookupString(doc, "$.requestId")
	resp.RequestKey = lookupString(doc, "$.requestKey")
	return resp, nil
}

func lookupString(doc any, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func snippet(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
