package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fandomexplorer/internal/apiclient"
)

func newClient(t *testing.T, routes map[string]string, status int) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"route not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL+"/", time.Second)
}

func TestHealth(t *testing.T) {
	c := newClient(t, map[string]string{
		"/api/health": `{"success":true,"message":"up","data":{"superhero":true,"comicvine":false}}`,
	}, http.StatusOK)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.Superhero)
	assert.False(t, h.ComicVine)
}

func TestSearch_EscapesName(t *testing.T) {
	c := newClient(t, map[string]string{
		"/api/superhero/search/iron%20man": `{"success":true,"total":1,"data":[{"id":"346","name":"Iron Man","image":"","publisher":"Marvel Comics","alignment":"good"}]}`,
	}, http.StatusOK)

	got, err := c.Search(context.Background(), "iron man")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "346", got[0].ID)
	assert.Equal(t, "Marvel Comics", got[0].Publisher)
}

func TestMedia(t *testing.T) {
	c := newClient(t, map[string]string{
		"/api/comicvine/character/batman/media": `{"success":true,"data":{"movies":[{"id":1,"name":"Batman Begins"}],"comics":[]}}`,
	}, http.StatusOK)

	m, err := c.Media(context.Background(), "batman")
	require.NoError(t, err)
	require.Len(t, m.Movies, 1)
	assert.Equal(t, "Batman Begins", m.Movies[0].Name)
	assert.Empty(t, m.Comics)
}

func TestErrorEnvelope(t *testing.T) {
	c := newClient(t, map[string]string{
		"/api/superhero/character/9999": `{"success":false,"error":"invalid id"}`,
	}, http.StatusNotFound)

	_, err := c.Character(context.Background(), "9999")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "invalid id", apiErr.Message)
}

func TestNonJSONBody(t *testing.T) {
	c := newClient(t, map[string]string{"/api/health": `<html>`}, http.StatusBadGateway)

	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
