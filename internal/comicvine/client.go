package comicvine

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"fandomexplorer/internal/upstream"
)

const (
	upstreamName = "comicvine"

	// characterPrefix is ComicVine's resource type id for characters.
	characterPrefix = "4005-"
	statusOK        = 1
)

type searchResult struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ResourceType string `json:"resource_type"`
}

type searchResponse struct {
	StatusCode int            `json:"status_code"`
	Results    []searchResult `json:"results"`
}

type resourceRef struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	APIDetailURL  string `json:"api_detail_url"`
	SiteDetailURL string `json:"site_detail_url"`
	IssueNumber   string `json:"issue_number"`
}

type characterResponse struct {
	StatusCode int `json:"status_code"`
	Results    struct {
		Movies       []resourceRef `json:"movies"`
		IssueCredits []resourceRef `json:"issue_credits"`
	} `json:"results"`
}

// checkStatus maps a status_code other than 1 to a LogicalError.
func checkStatus(body []byte) error {
	var status struct {
		StatusCode *int   `json:"status_code"`
		Error      string `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return nil
	}
	if status.StatusCode != nil && *status.StatusCode != statusOK {
		return &upstream.LogicalError{Upstream: upstreamName, Message: status.Error}
	}
	return nil
}

// Client talks to the ComicVine api; every call carries api_key and format.
type Client struct {
	up     *upstream.Client
	apiKey string
}

func NewClient(up *upstream.Client, apiKey string) *Client {
	return &Client{up: up, apiKey: apiKey}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) params(extra map[string]string) url.Values {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	for k, v := range extra {
		q.Set(k, v)
	}
	return q
}

// FindCharacter returns the first character search match, or nil.
func (c *Client) FindCharacter(ctx context.Context, name string) (*searchResult, error) {
	var resp searchResponse
	q := c.params(map[string]string{
		"resources":  "character",
		"query":      name,
		"limit":      "1",
		"field_list": "id,name",
	})
	if err := c.up.GetJSON(ctx, "/search/", q, &resp, checkStatus); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// CharacterMedia fetches movies and issue credits in a single call.
func (c *Client) CharacterMedia(ctx context.Context, id int) (movies, issues []resourceRef, err error) {
	var resp characterResponse
	q := c.params(map[string]string{"field_list": "movies,issue_credits"})
	path := "/character/" + characterPrefix + strconv.Itoa(id) + "/"
	if err := c.up.GetJSON(ctx, path, q, &resp, checkStatus); err != nil {
		return nil, nil, err
	}
	return resp.Results.Movies, resp.Results.IssueCredits, nil
}

// RawCharacter fetches id, name, movies and issue credits for the first
// search match of name, undecoded. It returns nil when nothing matches.
func (c *Client) RawCharacter(ctx context.Context, name string) (map[string]any, error) {
	match, err := c.FindCharacter(ctx, name)
	if err != nil || match == nil {
		return nil, err
	}
	var resp struct {
		Results map[string]any `json:"results"`
	}
	q := c.params(map[string]string{"field_list": "id,name,movies,issue_credits"})
	path := "/character/" + characterPrefix + strconv.Itoa(match.ID) + "/"
	if err := c.up.GetJSON(ctx, path, q, &resp, checkStatus); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = map[string]any{}
	}
	if _, ok := resp.Results["id"]; !ok {
		resp.Results["id"] = match.ID
	}
	if _, ok := resp.Results["name"]; !ok {
		resp.Results["name"] = match.Name
	}
	return resp.Results, nil
}
