package superhero_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"fandomexplorer/internal/superhero"
	"fandomexplorer/internal/upstream"
	"fandomexplorer/pkg/utils"
)

const testKey = "test-key"

const batmanJSON = `{
	"response": "success",
	"id": "70",
	"name": "Batman",
	"powerstats": {"intelligence": "100", "strength": "26", "speed": "27", "durability": "50", "power": "47", "combat": "100"},
	"biography": {
		"full-name": "Bruce Wayne",
		"alter-egos": "No alter egos found.",
		"aliases": ["Insider", "Matches Malone"],
		"place-of-birth": "Crest Hill, Bristol Township; Gotham County",
		"first-appearance": "Detective Comics #27",
		"publisher": "DC Comics",
		"alignment": "good"
	},
	"appearance": {"gender": "Male", "race": "Human", "height": ["6'2", "188 cm"], "weight": ["210 lb", "95 kg"], "eye-color": "blue", "hair-color": "black"},
	"work": {"occupation": "Businessman", "base": "Batcave, Stately Wayne Manor, Gotham City"},
	"connections": {"group-affiliation": "Batman Family, Justice League", "relatives": "Damian Wayne (son)"},
	"image": {"url": "https://www.superherodb.com/pictures2/portraits/10/100/639.jpg"}
}`

// fakeSuperhero mimics the superhero api: /{key}/search/{name}, /{key}/{id}
// and /{key}/{id}/{field}.
type fakeSuperhero struct {
	mu         sync.Mutex
	records    []map[string]any
	failSearch func(name string) bool
	status     int
	delay      time.Duration

	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newFake(t *testing.T, records ...string) *fakeSuperhero {
	t.Helper()
	f := &fakeSuperhero{}
	for _, r := range records {
		var m map[string]any
		if err := json.Unmarshal([]byte(r), &m); err != nil {
			t.Fatalf("bad fixture: %v", err)
		}
		f.records = append(f.records, m)
	}
	return f
}

func character(id, name, publisher string) string {
	b, _ := json.Marshal(map[string]any{
		"response":  "success",
		"id":        id,
		"name":      name,
		"biography": map[string]any{"publisher": publisher, "alignment": "good"},
		"image":     map[string]any{"url": "https://img.example.com/" + id + ".jpg"},
	})
	return string(b)
}

func (f *fakeSuperhero) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != testKey {
		writeJSON(w, map[string]any{"response": "error", "error": "access denied"})
		return
	}
	parts = parts[1:]

	f.mu.Lock()
	defer f.mu.Unlock()

	if parts[0] == "search" && len(parts) == 2 {
		name := parts[1]
		if f.failSearch != nil && f.failSearch(name) {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var results []map[string]any
		for _, rec := range f.records {
			if strings.Contains(strings.ToLower(rec["name"].(string)), strings.ToLower(name)) {
				results = append(results, rec)
			}
		}
		if len(results) == 0 {
			writeJSON(w, map[string]any{"response": "error", "error": "character with given name not found"})
			return
		}
		writeJSON(w, map[string]any{"response": "success", "results-for": name, "results": results})
		return
	}

	rec := f.find(parts[0])
	if rec == nil {
		writeJSON(w, map[string]any{"response": "error", "error": "invalid id"})
		return
	}
	if len(parts) == 1 {
		writeJSON(w, rec)
		return
	}

	// sub-resources are flattened next to id and name
	flat := map[string]any{"response": "success", "id": rec["id"], "name": rec["name"]}
	if sub, ok := rec[parts[1]].(map[string]any); ok {
		for k, v := range sub {
			flat[k] = v
		}
	}
	writeJSON(w, flat)
}

func (f *fakeSuperhero) find(id string) map[string]any {
	for _, rec := range f.records {
		if rec["id"] == id {
			return rec
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newService(t *testing.T, f *fakeSuperhero, fanOut int) *superhero.Service {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	up := upstream.NewClient("superhero", srv.URL+"/"+testKey, 2*time.Second, nil, nil)
	return superhero.NewService(superhero.NewClient(up), nil, superhero.Options{
		ImageProxy:  utils.DefaultImageProxyPrefix,
		FanOutLimit: fanOut,
		Locale:      language.English,
	})
}

func newRouter(t *testing.T, f *fakeSuperhero) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	superhero.NewHandler(newService(t, f, 4), nil).RegisterRoutes(r.Group("/api/superhero"))
	return r
}
