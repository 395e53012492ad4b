package superhero_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Total   *int            `json:"total"`
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestHandler_SearchBatman(t *testing.T) {
	f := newFake(t, batmanJSON, character("1001", "Batman Beyond", "DC Comics"), character("644", "Superman", "DC Comics"))
	r := newRouter(t, f)

	w, env := get(t, r, "/api/superhero/search/batman")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 2)
	for _, c := range data {
		assert.NotEmpty(t, c["id"])
		assert.NotEmpty(t, c["name"])
		assert.NotEmpty(t, c["image"])
	}
	assert.Equal(t, "DC Comics", data[0]["publisher"])
	assert.Equal(t, "good", data[0]["alignment"])
}

func TestHandler_SearchIsRepeatable(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON, character("1001", "Batman Beyond", "DC Comics")))

	_, first := get(t, r, "/api/superhero/search/batman")
	_, second := get(t, r, "/api/superhero/search/batman")
	assert.True(t, bytes.Equal(first.Data, second.Data))
}

func TestHandler_SearchNotFound(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON))

	w, env := get(t, r, "/api/superhero/search/zzzz")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "character not found", env.Error)
}

func TestHandler_SearchUpstreamFailure(t *testing.T) {
	f := newFake(t, batmanJSON)
	f.status = http.StatusInternalServerError
	r := newRouter(t, f)

	w, env := get(t, r, "/api/superhero/search/batman")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "500")
}

func TestHandler_ListAll(t *testing.T) {
	f := newFake(t, batmanJSON, character("644", "Superman", "DC Comics"), character("2", "Abomination", "Marvel Comics"))
	r := newRouter(t, f)

	for _, path := range []string{"/api/superhero/characters", "/api/superhero/all"} {
		w, env := get(t, r, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.NotNil(t, env.Total)
		assert.Equal(t, 3, *env.Total)

		var data []map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Abomination", data[0]["name"])
		assert.Equal(t, "Superman", data[2]["name"])
	}
}

func TestHandler_ListAllUpstreamDown(t *testing.T) {
	f := newFake(t, batmanJSON)
	f.status = http.StatusBadGateway
	r := newRouter(t, f)

	w, env := get(t, r, "/api/superhero/characters")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
}

func TestHandler_CharacterByID(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON))

	w, env := get(t, r, "/api/superhero/character/70")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Biography struct {
			RealName string `json:"realName"`
		} `json:"biography"`
		Appearance struct {
			Height []string `json:"height"`
		} `json:"appearance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "70", data.ID)
	assert.Equal(t, "Batman", data.Name)
	assert.Equal(t, "Bruce Wayne", data.Biography.RealName)
	assert.Equal(t, []string{"6'2", "188 cm"}, data.Appearance.Height)
}

func TestHandler_CharacterNotFound(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON))

	w, env := get(t, r, "/api/superhero/character/99999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid id", env.Error)
}

func TestHandler_Fields(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON))

	w, env := get(t, r, "/api/superhero/character/70/powerstats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, "100", stats["intelligence"])
	assert.Equal(t, "Batman", stats["name"])
	assert.NotContains(t, stats, "response")

	w, env = get(t, r, "/api/superhero/character/70/image")
	require.Equal(t, http.StatusOK, w.Code)
	var img map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &img))
	assert.Equal(t, "https://www.superherodb.com/pictures2/portraits/10/100/639.jpg", img["url"])

	for _, field := range []string{"biography", "appearance", "work", "connections"} {
		w, env = get(t, r, "/api/superhero/character/70/"+field)
		assert.Equal(t, http.StatusOK, w.Code, field)
		assert.True(t, env.Success, field)
	}
}

func TestHandler_FieldNotFound(t *testing.T) {
	r := newRouter(t, newFake(t, batmanJSON))

	w, env := get(t, r, "/api/superhero/character/404/work")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
