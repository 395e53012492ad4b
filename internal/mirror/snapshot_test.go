package mirror_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fandomexplorer/internal/comicvine"
	"fandomexplorer/internal/mirror"
	"fandomexplorer/internal/superhero"
	"fandomexplorer/internal/upstream"
)

func newRecorder(t *testing.T, cvKey string) *mirror.Recorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	data, err := mirror.Load("../../data/mirror.json")
	require.NoError(t, err)
	m := gin.New()
	mirror.NewServer(data).RegisterRoutes(m)
	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)

	sh := upstream.NewClient("superhero", srv.URL+"/superhero/mirror", 2*time.Second, nil, nil)
	cv := upstream.NewClient("comicvine", srv.URL+"/comicvine", 2*time.Second, nil, nil)
	return &mirror.Recorder{
		Superhero: superhero.NewClient(sh),
		ComicVine: comicvine.NewClient(cv, cvKey),
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	rec := newRecorder(t, "mirror")

	d, err := rec.Snapshot(context.Background(), []string{"70", "9999", "346"}, []string{"iron man", "nobody"})
	require.NoError(t, err)

	require.Len(t, d.Superhero, 2)
	assert.Equal(t, "Batman", d.Superhero[0]["name"])
	assert.NotContains(t, d.Superhero[0], "response")
	assert.Equal(t, "Iron Man", d.Superhero[1]["name"])

	require.Len(t, d.ComicVine, 1)
	assert.Equal(t, "Iron Man", d.ComicVine[0]["name"])
	assert.Len(t, d.ComicVine[0]["movies"], 2)

	path := filepath.Join(t.TempDir(), "nested", "mirror.json")
	require.NoError(t, d.Save(path))
	loaded, err := mirror.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Superhero, 2)
	assert.Len(t, loaded.ComicVine, 1)
}

func TestSnapshot_NothingRecorded(t *testing.T) {
	rec := newRecorder(t, "")

	_, err := rec.Snapshot(context.Background(), []string{"9999"}, []string{"iron man"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing recorded")
}
