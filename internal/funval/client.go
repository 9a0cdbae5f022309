package funval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/pkg/config"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

// Auth carries the per-call credentials. An empty token sends the request
// anonymously (only login does that).
type Auth struct {
	Token string
}

// Observer receives timing for every outbound backend call. Nil-safe.
type Observer interface {
	ObserveBackendRequest(method, path string, status int, duration time.Duration)
}

// Client talks to the Funval REST API. Every call attaches the bearer token
// when present and maps responses into the shared error taxonomy: 401 becomes
// ErrSessionExpired, any other non-2xx becomes ErrBackend carrying the server
// message when the payload has one.
type Client struct {
	http     *http.Client
	baseURL  string
	logger   *zap.Logger
	observer Observer
}

// NewClient constructs a backend client.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		logger:   logger,
		observer: observer,
	}
}

// errorPayload is the backend's error body shape.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(ctx context.Context, auth Auth, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build backend request")
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveBackendRequest(method, metricRoute(path), status, duration)
	}

	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, appErrors.ErrBackend.Message)
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", duration),
	)

	return resp, nil
}

// getJSON issues a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, auth Auth, path string, out interface{}) error {
	resp, err := c.do(ctx, auth, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	return decodeBody(resp.Body, out)
}

// sendJSON issues a request with a JSON body and optionally decodes the
// response into out.
func (c *Client) sendJSON(ctx context.Context, auth Auth, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode backend payload")
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.do(ctx, auth, method, path, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(resp.Body, out)
}

// checkStatus maps non-2xx responses into the error taxonomy.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return appErrors.ErrSessionExpired
	}

	message := serverMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if message == "" {
			message = appErrors.ErrValidation.Message
		}
		return appErrors.New(appErrors.ErrValidation.Code, resp.StatusCode, message)
	default:
		if message != "" {
			return appErrors.New(appErrors.ErrBackend.Code, resp.StatusCode, message)
		}
		return appErrors.New(appErrors.ErrBackend.Code, resp.StatusCode,
			fmt.Sprintf("backend returned status %d", resp.StatusCode))
	}
}

// serverMessage pulls the human-readable message out of an error body, if any.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// metricRoute collapses entity ids into a placeholder so the metric label
// set stays bounded no matter how many records exist.
func metricRoute(path string) string {
	parts := strings.Split(path, "/")
	changed := false
	for i, part := range parts {
		if allDigits(part) {
			parts[i] = ":id"
			changed = true
		}
	}
	if !changed {
		return path
	}
	return strings.Join(parts, "/")
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func jsonBody(in interface{}) io.Reader {
	payload, _ := json.Marshal(in)
	return bytes.NewReader(payload)
}

func decodeBody(body io.Reader, out interface{}) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, "failed to decode backend response")
	}
	return nil
}
