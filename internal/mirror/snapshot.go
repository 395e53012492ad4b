package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fandomexplorer/internal/comicvine"
	"fandomexplorer/internal/superhero"
)

// Recorder captures live upstream records into mirror Data.
type Recorder struct {
	Superhero *superhero.Client
	ComicVine *comicvine.Client // optional
	Log       *zap.Logger
}

// Snapshot fetches each superhero id and each ComicVine character name.
// A record that fails is logged and left out; the snapshot fails only when
// nothing at all could be recorded.
func (r *Recorder) Snapshot(ctx context.Context, ids, names []string) (*Data, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	d := &Data{Superhero: []map[string]any{}, ComicVine: []map[string]any{}}
	var firstErr error

	for _, id := range ids {
		rec, err := r.Superhero.RawCharacter(ctx, id)
		if err != nil {
			log.Warn("snapshot: superhero record skipped", zap.String("id", id), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		d.Superhero = append(d.Superhero, rec)
	}

	if r.ComicVine != nil && r.ComicVine.Configured() {
		for _, name := range names {
			rec, err := r.ComicVine.RawCharacter(ctx, name)
			if err != nil {
				log.Warn("snapshot: comicvine record skipped", zap.String("name", name), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			if rec == nil {
				log.Info("snapshot: no comicvine match", zap.String("name", name))
				continue
			}
			d.ComicVine = append(d.ComicVine, rec)
		}
	} else if len(names) > 0 {
		log.Warn("snapshot: comicvine not configured, names ignored", zap.Int("names", len(names)))
	}

	if len(d.Superhero) == 0 && len(d.ComicVine) == 0 && firstErr != nil {
		return nil, fmt.Errorf("snapshot: nothing recorded: %w", firstErr)
	}
	return d, nil
}

// Save writes d as indented JSON, creating parent directories.
func (d *Data) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mirror data: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write mirror data: %w", err)
	}
	return nil
}
