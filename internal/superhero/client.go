package superhero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"fandomexplorer/internal/upstream"
)

const upstreamName = "superhero"

// rawCharacter is the superhero api record as it arrives. Nested objects are
// pointers because partial records omit them.
type rawCharacter struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Powerstats  *rawPowerstats  `json:"powerstats"`
	Biography   *rawBiography   `json:"biography"`
	Appearance  *rawAppearance  `json:"appearance"`
	Work        *rawWork        `json:"work"`
	Connections *rawConnections `json:"connections"`
	Image       *rawImage       `json:"image"`
}

type rawPowerstats struct {
	Intelligence string `json:"intelligence"`
	Strength     string `json:"strength"`
	Speed        string `json:"speed"`
	Durability   string `json:"durability"`
	Power        string `json:"power"`
	Combat       string `json:"combat"`
}

type rawBiography struct {
	FullName        string   `json:"full-name"`
	AlterEgos       string   `json:"alter-egos"`
	Aliases         []string `json:"aliases"`
	PlaceOfBirth    string   `json:"place-of-birth"`
	FirstAppearance string   `json:"first-appearance"`
	Publisher       string   `json:"publisher"`
	Alignment       string   `json:"alignment"`
}

type rawAppearance struct {
	Gender    string   `json:"gender"`
	Race      string   `json:"race"`
	Height    []string `json:"height"`
	Weight    []string `json:"weight"`
	EyeColor  string   `json:"eye-color"`
	HairColor string   `json:"hair-color"`
}

type rawWork struct {
	Occupation string `json:"occupation"`
	Base       string `json:"base"`
}

type rawConnections struct {
	GroupAffiliation string `json:"group-affiliation"`
	Relatives        string `json:"relatives"`
}

type rawImage struct {
	URL string `json:"url"`
}

type searchResponse struct {
	ResultsFor string         `json:"results-for"`
	Results    []rawCharacter `json:"results"`
}

// checkResponse maps {"response":"error","error":"..."} to a LogicalError.
func checkResponse(body []byte) error {
	var status struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		// malformed bodies surface as decode errors
		return nil
	}
	if strings.EqualFold(status.Response, "error") {
		return &upstream.LogicalError{Upstream: upstreamName, Message: status.Error}
	}
	return nil
}

// Client talks to the superhero api. The api key lives in the base url.
type Client struct {
	up *upstream.Client
}

func NewClient(up *upstream.Client) *Client {
	return &Client{up: up}
}

func (c *Client) Search(ctx context.Context, name string) ([]rawCharacter, error) {
	var resp searchResponse
	if err := c.up.GetJSON(ctx, "/search/"+url.PathEscape(name), nil, &resp, checkResponse); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) Character(ctx context.Context, id string) (*rawCharacter, error) {
	var resp rawCharacter
	if err := c.up.GetJSON(ctx, "/"+url.PathEscape(id), nil, &resp, checkResponse); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Field fetches the /{id}/{field} sub-resource. A nested object under the
// field name is returned as is; otherwise the flat payload is returned
// without its "response" status key.
func (c *Client) Field(ctx context.Context, id, field string) (map[string]json.RawMessage, error) {
	var resp map[string]json.RawMessage
	path := "/" + url.PathEscape(id) + "/" + field
	if err := c.up.GetJSON(ctx, path, nil, &resp, checkResponse); err != nil {
		return nil, err
	}

	if nested, ok := resp[field]; ok {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(nested, &obj); err != nil {
			return nil, fmt.Errorf("superhero: decode %s: %w", field, err)
		}
		return obj, nil
	}

	delete(resp, "response")
	return resp, nil
}

// RawCharacter fetches /{id} undecoded, minus the "response" status key.
func (c *Client) RawCharacter(ctx context.Context, id string) (map[string]any, error) {
	var resp map[string]any
	if err := c.up.GetJSON(ctx, "/"+url.PathEscape(id), nil, &resp, checkResponse); err != nil {
		return nil, err
	}
	delete(resp, "response")
	return resp, nil
}
