// Package comicvine serves the cross-api media bundle backed by ComicVine.
package comicvine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fandomexplorer/pkg/models"
)

var ErrNotConfigured = errors.New("comicvine api key not configured")

type Service struct {
	client *Client
	log    *zap.Logger
	limit  int
}

func NewService(client *Client, log *zap.Logger, mediaLimit int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if mediaLimit < 1 {
		mediaLimit = 20
	}
	return &Service{client: client, log: log, limit: mediaLimit}
}

// Media resolves name to a ComicVine character and returns its movies and
// comics. No match gives empty lists. A failing follow-up call also gives
// empty lists; only the search step can fail the request.
func (s *Service) Media(ctx context.Context, name string) (models.MediaBundle, error) {
	bundle := models.EmptyMedia()
	if !s.client.Configured() {
		return bundle, ErrNotConfigured
	}

	match, err := s.client.FindCharacter(ctx, name)
	if err != nil {
		return bundle, fmt.Errorf("search character %q: %w", name, err)
	}
	if match == nil {
		s.log.Info("no comicvine match", zap.String("name", name))
		return bundle, nil
	}

	movies, issues, err := s.client.CharacterMedia(ctx, match.ID)
	if err != nil {
		s.log.Warn("media lookup failed, returning empty lists",
			zap.String("name", name), zap.Int("comicvine_id", match.ID), zap.Error(err))
		return bundle, nil
	}

	bundle.Movies = s.toRefs(movies)
	bundle.Comics = s.toRefs(issues)
	s.log.Info("media resolved",
		zap.String("name", name),
		zap.Int("movies", len(bundle.Movies)),
		zap.Int("comics", len(bundle.Comics)),
	)
	return bundle, nil
}

func (s *Service) toRefs(in []resourceRef) []models.MediaRef {
	if len(in) > s.limit {
		in = in[:s.limit]
	}
	out := make([]models.MediaRef, 0, len(in))
	for _, r := range in {
		out = append(out, models.MediaRef{
			ID:            r.ID,
			Name:          r.Name,
			APIDetailURL:  r.APIDetailURL,
			SiteDetailURL: r.SiteDetailURL,
			IssueNumber:   r.IssueNumber,
		})
	}
	return out
}
