// Package mirror is a local stand-in for both upstream apis, serving records
// from a JSON fixture so the api server can run offline.
//
// Fixture layout:
//
//	{
//	  "superhero": [ {<superhero api character record>}, ... ],
//	  "comicvine": [ {"id": 1455, "name": "Iron Man", "movies": [...], "issue_credits": [...]}, ... ]
//	}
package mirror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Data struct {
	Superhero []map[string]any `json:"superhero"`
	ComicVine []map[string]any `json:"comicvine"`
}

func Load(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mirror data: %w", err)
	}
	// validate JSON so a bad file doesn't silently serve nothing
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("mirror data invalid JSON: %w", err)
	}
	return &d, nil
}

type Server struct {
	Data *Data
}

func NewServer(d *Data) *Server {
	if d == nil {
		d = &Data{}
	}
	return &Server{Data: d}
}

// RegisterRoutes mounts the superhero api under /superhero/:key and the
// ComicVine api under /comicvine.
func (s *Server) RegisterRoutes(r *gin.Engine) {
	sh := r.Group("/superhero/:key")
	sh.GET("/search/:name", s.superheroSearch)
	sh.GET("/:id", s.superheroCharacter)
	sh.GET("/:id/:field", s.superheroField)

	cv := r.Group("/comicvine")
	cv.GET("/search/", s.comicvineSearch)
	cv.GET("/character/:ref/", s.comicvineCharacter)
}

func shError(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"response": "error", "error": msg})
}

func (s *Server) superheroSearch(c *gin.Context) {
	q := strings.ToLower(c.Param("name"))
	results := make([]map[string]any, 0)
	for _, rec := range s.Data.Superhero {
		if name, _ := rec["name"].(string); strings.Contains(strings.ToLower(name), q) {
			results = append(results, rec)
		}
	}
	if len(results) == 0 {
		shError(c, "character with given name not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": "success", "results-for": c.Param("name"), "results": results})
}

func (s *Server) findSuperhero(id string) map[string]any {
	for _, rec := range s.Data.Superhero {
		if fmt.Sprint(rec["id"]) == id {
			return rec
		}
	}
	return nil
}

func (s *Server) superheroCharacter(c *gin.Context) {
	rec := s.findSuperhero(c.Param("id"))
	if rec == nil {
		shError(c, "invalid id")
		return
	}
	out := map[string]any{"response": "success"}
	for k, v := range rec {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// superheroField flattens the sub-object next to id and name, as the real
// api does.
func (s *Server) superheroField(c *gin.Context) {
	rec := s.findSuperhero(c.Param("id"))
	if rec == nil {
		shError(c, "invalid id")
		return
	}
	sub, ok := rec[c.Param("field")].(map[string]any)
	if !ok {
		shError(c, "invalid field")
		return
	}
	out := map[string]any{"response": "success", "id": rec["id"], "name": rec["name"]}
	for k, v := range sub {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

func cvOK(c *gin.Context, results any) {
	c.JSON(http.StatusOK, gin.H{"status_code": 1, "error": "OK", "results": results})
}

func (s *Server) comicvineSearch(c *gin.Context) {
	if c.Query("api_key") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"status_code": 100, "error": "Invalid API Key", "results": []any{}})
		return
	}
	q := strings.ToLower(c.Query("query"))
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	results := make([]gin.H, 0)
	for _, rec := range s.Data.ComicVine {
		name, _ := rec["name"].(string)
		if q != "" && strings.Contains(strings.ToLower(name), q) {
			results = append(results, gin.H{"id": rec["id"], "name": name, "resource_type": "character"})
		}
		if len(results) >= limit {
			break
		}
	}
	cvOK(c, results)
}

func (s *Server) comicvineCharacter(c *gin.Context) {
	id := strings.TrimPrefix(c.Param("ref"), "4005-")
	for _, rec := range s.Data.ComicVine {
		if fmt.Sprint(rec["id"]) != id {
			continue
		}
		out := gin.H{}
		for _, f := range strings.Split(c.DefaultQuery("field_list", "id,name,movies,issue_credits"), ",") {
			if v, ok := rec[f]; ok {
				out[f] = v
			}
		}
		cvOK(c, out)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status_code": 101, "error": "Object Not Found", "results": []any{}})
}
