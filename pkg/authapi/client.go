package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/sanitizer"
)

const maxBodySize = 1 << 20

// Clearer removes the locally persisted credential.
type Clearer interface {
	Clear(ctx context.Context, w http.ResponseWriter) error
}

type Client struct {
	base    *url.URL
	http    *http.Client
	clearer Clearer
	log     *slog.Logger
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTransport replaces the underlying round tripper. Bearer injection is
// still applied on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.http.Transport = rt
		}
	}
}

// New creates a Client for cfg.BaseURL. tokens supplies the bearer token;
// clearer is used by Logout.
func New(cfg Config, tokens TokenSource, clearer Clearer, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: timeout, Transport: http.DefaultTransport},
		clearer: clearer,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Transport = &bearerTransport{base: c.http.Transport, tokens: tokens}
	c.log = c.log.With(logger.Component("authapi"))
	return c, nil
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// Transport returns the bearer-injecting round tripper used by the client.
func (c *Client) Transport() http.RoundTripper {
	return c.http.Transport
}

// Login posts the credentials. Empty email or password never reach the
// backend.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	if email == "" || password == "" {
		return failure(MsgConnectFailed, KeyConnectFailed)
	}

	resp := c.call(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	switch resp.kind {
	case callOK:
		return Result{Success: true, Data: resp.body}
	case callHTTPError:
		c.log.WarnContext(ctx, "login rejected",
			logger.Status(resp.status),
			logger.Email(sanitizer.MaskEmail(email)),
		)
		if msg := resp.serverMessage(); msg != "" {
			return Result{Message: msg}
		}
		return failure(MsgInvalidCredentials, KeyInvalidCredentials)
	default:
		return resp.transportFailure()
	}
}

// Register creates an account. It never signs the visitor in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result {
	resp := c.call(ctx, http.MethodPost, "/auth/register", req)
	switch resp.kind {
	case callOK:
		return Result{Success: true, Data: resp.body}
	case callHTTPError:
		c.log.WarnContext(ctx, "registration rejected",
			logger.Status(resp.status),
			logger.Email(sanitizer.MaskEmail(req.Email)),
		)
		if resp.status == http.StatusConflict {
			return failure(MsgEmailInUse, KeyEmailInUse)
		}
		if msg := resp.serverMessage(); msg != "" {
			return Result{Message: msg}
		}
		return failure(MsgRegisterFailed, KeyRegisterFailed)
	default:
		return resp.transportFailure()
	}
}

// CheckSession fetches the current identity. Failures carry no message.
func (c *Client) CheckSession(ctx context.Context) Result {
	resp := c.call(ctx, http.MethodGet, "/auth/me", nil)
	if resp.kind != callOK {
		return Result{}
	}
	return Result{Success: true, Data: resp.body}
}

// Logout clears the local credential without contacting the backend and
// always succeeds.
func (c *Client) Logout(ctx context.Context, w http.ResponseWriter) Result {
	if c.clearer != nil {
		if err := c.clearer.Clear(ctx, w); err != nil {
			c.log.ErrorContext(ctx, "clear credential", logger.Error(err))
		}
	}
	return Result{Success: true}
}

type callKind int

const (
	callOK callKind = iota
	callHTTPError
	callNoResponse
	callBuildFailed
)

type callResult struct {
	kind   callKind
	status int
	body   json.RawMessage
}

func (r callResult) serverMessage() string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(r.body, &payload) != nil {
		return ""
	}
	return payload.Message
}

func (r callResult) transportFailure() Result {
	if r.kind == callNoResponse {
		return failure(MsgNoResponse, KeyNoResponse)
	}
	return failure(MsgConnectFailed, KeyConnectFailed)
}

func (c *Client) call(ctx context.Context, method, path string, payload any) callResult {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.log.ErrorContext(ctx, "encode request", logger.Path(path), logger.Error(err))
			return callResult{kind: callBuildFailed}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		c.log.ErrorContext(ctx, "build request", logger.Path(path), logger.Error(err))
		return callResult{kind: callBuildFailed}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "backend unreachable",
			logger.Path(path),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return callResult{kind: callNoResponse}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil && !errors.Is(err, io.EOF) {
		c.log.ErrorContext(ctx, "read response", logger.Path(path), logger.Error(err))
		return callResult{kind: callNoResponse}
	}

	out := callResult{status: resp.StatusCode}
	if len(bytes.TrimSpace(data)) > 0 {
		out.body = data
	}
	if resp.StatusCode >= http.StatusBadRequest {
		out.kind = callHTTPError
		return out
	}
	out.kind = callOK
	if out.body != nil && !json.Valid(out.body) {
		out.body, _ = json.Marshal(string(data))
	}
	return out
}
