// Package upstream is the shared GET-and-decode helper used by every
// third-party API client in the service.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"fandomexplorer/internal/metrics"
)

const (
	userAgent = "fandomexplorer/1.0"

	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 8 << 20
	// maxErrorBody caps the body kept on an HTTPError.
	maxErrorBody = 512
)

// Checker inspects a 2xx payload for an upstream-specific failure signal and
// returns a *LogicalError when it finds one.
type Checker func(body []byte) error

type Client struct {
	Name    string
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// NewClient builds a client for one upstream. BaseURL may embed secrets (the
// superhero API keeps its key in the path), so only paths are ever logged.
func NewClient(name, baseURL string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		Name:    name,
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log.With(zap.String("upstream", name)),
		Metrics: m,
	}
}

// GetJSON issues a single GET for path with the given query and decodes the
// body into out. There are no retries.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any, check Checker) error {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		c.Metrics.ObserveUpstream(c.Name, outcome, time.Since(start))
		c.Log.Debug("upstream call",
			zap.String("path", path),
			zap.String("outcome", outcome),
			zap.Duration("duration", time.Since(start)),
		)
	}()

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: build request: %w", c.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: request %s: %w", c.Name, path, stripURL(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		outcome = metrics.OutcomeTransport
		return fmt.Errorf("%s: read body: %w", c.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeHTTP
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &HTTPError{Upstream: c.Name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if check != nil {
		if err := check(body); err != nil {
			outcome = metrics.OutcomeLogical
			return err
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		outcome = metrics.OutcomeDecode
		return fmt.Errorf("%s: decode %s: %w", c.Name, path, err)
	}
	return nil
}

// stripURL drops the request URL from transport errors; it may carry an api key.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
