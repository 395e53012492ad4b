// Package superhero serves the character listing, search and detail routes
// backed by the superhero api.
package superhero

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fandomexplorer/internal/upstream"
	"fandomexplorer/pkg/models"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Fields are the sub-resources served by /character/:id/<field>.
var Fields = []string{"powerstats", "biography", "appearance", "work", "connections", "image"}

// NotFoundError means the upstream resolved the request to no character.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "character not found"
	}
	return e.Message
}

func asNotFound(err error) error {
	if le, ok := upstream.AsLogical(err); ok {
		return &NotFoundError{Message: le.Message}
	}
	return err
}

type Options struct {
	ImageProxy  string
	FanOutLimit int
	Locale      language.Tag
}

type Service struct {
	client     *Client
	log        *zap.Logger
	imageProxy string
	fanOut     int
	locale     language.Tag
}

func NewService(client *Client, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FanOutLimit < 1 {
		opts.FanOutLimit = 1
	}
	return &Service{
		client:     client,
		log:        log,
		imageProxy: opts.ImageProxy,
		fanOut:     opts.FanOutLimit,
		locale:     opts.Locale,
	}
}

// ListAll searches every letter of the alphabet with at most fanOut calls in
// flight, keeps the first record seen per id (in letter order) and sorts by
// name under the configured locale. A failed letter is logged and skipped;
// only when every letter fails is an error returned.
func (s *Service) ListAll(ctx context.Context) ([]models.CharacterSummary, error) {
	results := make([][]rawCharacter, len(letters))
	errs := make([]error, len(letters))

	var g errgroup.Group
	g.SetLimit(s.fanOut)
	for i, l := range letters {
		g.Go(func() error {
			chars, err := s.client.Search(ctx, string(l))
			if err != nil {
				if _, ok := upstream.AsLogical(err); ok {
					// nothing matches this letter
					return nil
				}
				errs[i] = err
				s.log.Warn("letter search failed, skipping", zap.String("letter", string(l)), zap.Error(err))
				return nil
			}
			results[i] = chars
			return nil
		})
	}
	_ = g.Wait()

	if failed := countErrors(errs); failed == len(letters) {
		return nil, errs[0]
	} else if failed > 0 {
		s.log.Info("listing built from partial results", zap.Int("failed_letters", failed))
	}

	seen := make(map[string]struct{})
	out := make([]models.CharacterSummary, 0)
	for _, chars := range results {
		for _, rc := range chars {
			if _, dup := seen[rc.ID]; dup {
				continue
			}
			seen[rc.ID] = struct{}{}
			out = append(out, s.toSummary(rc))
		}
	}

	s.sortByName(out)
	return out, nil
}

// sortByName orders by locale-aware name comparison, then id for a stable
// total order. collate.Collator is not safe for concurrent use, so one is
// created per call.
func (s *Service) sortByName(items []models.CharacterSummary) {
	col := collate.New(s.locale)
	slices.SortStableFunc(items, func(a, b models.CharacterSummary) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func countErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}

// Search returns summaries in upstream order. Unknown names give a
// *NotFoundError.
func (s *Service) Search(ctx context.Context, name string) ([]models.CharacterSummary, error) {
	chars, err := s.client.Search(ctx, name)
	if err != nil {
		return nil, asNotFound(err)
	}
	out := make([]models.CharacterSummary, 0, len(chars))
	for _, rc := range chars {
		out = append(out, s.toSummary(rc))
	}
	return out, nil
}

// Character fetches the full record in one call and reshapes it.
func (s *Service) Character(ctx context.Context, id string) (*models.CharacterDetail, error) {
	rc, err := s.client.Character(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if rc.ID == "" {
		rc.ID = id
	}
	detail := s.toDetail(*rc)
	return &detail, nil
}

func (s *Service) Field(ctx context.Context, id, field string) (any, error) {
	if !slices.Contains(Fields, field) {
		return nil, errors.New("unknown field " + field)
	}
	data, err := s.client.Field(ctx, id, field)
	if err != nil {
		return nil, asNotFound(err)
	}
	return data, nil
}
