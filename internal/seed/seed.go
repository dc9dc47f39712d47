package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/pagepal/internal/config"
	"github.com/idilsaglam/pagepal/internal/model"
)

// Importer performs the one-shot remote fetch used to populate a shelf.
// It has no retry or backoff; a failed fetch leaves the stored list
// untouched and the user reopens the screen to try again.
type Importer struct {
	client *http.Client
	cfg    config.SeedConfig
	log    *zap.Logger
}

func New(cfg config.SeedConfig, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		client: &http.Client{Timeout: 15 * time.Second},
		cfg:    cfg,
		log:    log,
	}
}

// Remote response shapes. Anything else decodes to zero values and
// degrades to an empty imported list rather than a schema error.
type worksResponse struct {
	Works []struct {
		Title string `json:"title"`
	} `json:"works"`
}

type moviesResponse struct {
	Movies []struct {
		Title       string    `json:"title"`
		ReleaseYear yearValue `json:"releaseYear"`
	} `json:"movies"`
}

// yearValue tolerates both quoted and bare release years.
type yearValue string

func (y *yearValue) UnmarshalJSON(b []byte) error {
	*y = yearValue(strings.Trim(string(b), `"`))
	return nil
}

// Fetch retrieves and maps the seed list for one shelf. The caller
// overwrites the stored list wholesale on success.
func (imp *Importer) Fetch(ctx context.Context, shelf model.Shelf) ([]model.Item, error) {
	switch shelf {
	case model.Movies:
		return imp.fetchMovies(ctx)
	default:
		return imp.fetchBooks(ctx)
	}
}

func (imp *Importer) fetchBooks(ctx context.Context) ([]model.Item, error) {
	var out worksResponse
	if err := imp.getJSON(ctx, imp.cfg.BooksURL, &out); err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(out.Works))
	for _, w := range out.Works {
		title := strings.TrimSpace(w.Title)
		if title == "" {
			continue
		}
		items = append(items, model.Item{Title: title, Rating: model.SeedRating})
	}
	return imp.truncate(items), nil
}

func (imp *Importer) fetchMovies(ctx context.Context) ([]model.Item, error) {
	var out moviesResponse
	if err := imp.getJSON(ctx, imp.cfg.MoviesURL, &out); err != nil {
		return nil, err
	}
	items := make([]model.Item, 0, len(out.Movies))
	for _, m := range out.Movies {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			continue
		}
		if year := strings.TrimSpace(string(m.ReleaseYear)); year != "" && year != "null" {
			title = fmt.Sprintf("%s (%s)", title, year)
		}
		items = append(items, model.Item{Title: title, Rating: model.SeedRating})
	}
	return imp.truncate(items), nil
}

func (imp *Importer) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch seed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch seed: unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		// An unexpected body shape is not a failure: it maps to an
		// empty imported list.
		imp.log.Warn("seed body did not match expected shape", zap.String("url", url), zap.Error(err))
	}
	return nil
}

func (imp *Importer) truncate(items []model.Item) []model.Item {
	if imp.cfg.Limit > 0 && len(items) > imp.cfg.Limit {
		return items[:imp.cfg.Limit]
	}
	return items
}
