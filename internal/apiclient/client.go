// Package apiclient talks to a running api-server on behalf of the cli.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fandomexplorer/pkg/models"
)

const DefaultBaseURL = "http://localhost:3000"

// APIError is a non-success envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Raw returns the data member of the envelope at path without decoding it.
func (c *Client) Raw(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("GET %s: unexpected body (status %d): %w", path, resp.StatusCode, err)
	}
	if !env.Success || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return env.Data, nil
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	raw, err := c.Raw(ctx, path)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// Health is the status map reported by /api/health.
type Health struct {
	Superhero bool `json:"superhero"`
	ComicVine bool `json:"comicvine"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	return get[Health](ctx, c, "/api/health")
}

func (c *Client) Characters(ctx context.Context) ([]models.CharacterSummary, error) {
	return get[[]models.CharacterSummary](ctx, c, "/api/superhero/characters")
}

func (c *Client) Search(ctx context.Context, name string) ([]models.CharacterSummary, error) {
	return get[[]models.CharacterSummary](ctx, c, "/api/superhero/search/"+url.PathEscape(name))
}

func (c *Client) Character(ctx context.Context, id string) (models.CharacterDetail, error) {
	return get[models.CharacterDetail](ctx, c, "/api/superhero/character/"+url.PathEscape(id))
}

// Field returns one sub-resource verbatim.
func (c *Client) Field(ctx context.Context, id, field string) (map[string]any, error) {
	return get[map[string]any](ctx, c, "/api/superhero/character/"+url.PathEscape(id)+"/"+url.PathEscape(field))
}

func (c *Client) Media(ctx context.Context, name string) (models.MediaBundle, error) {
	return get[models.MediaBundle](ctx, c, "/api/comicvine/character/"+url.PathEscape(name)+"/media")
}
