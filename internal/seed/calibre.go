package seed

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/idilsaglam/pagepal/internal/model"
)

// FetchCalibre scrapes a calibre-web discover/listing page and maps
// each book entry to an item. Ratings on the page (filled stars) are
// carried over; books without one get the seed default.
func (imp *Importer) FetchCalibre(ctx context.Context, pageURL string) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calibre page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calibre page: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calibre page: %w", err)
	}

	var items []model.Item
	doc.Find(".book").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(".title").First().Text())
		if title == "" {
			return
		}
		rating := s.Find(".rating .good").Length()
		if rating < model.MinRating || rating > model.MaxRating {
			rating = model.SeedRating
		}
		items = append(items, model.Item{Title: title, Rating: rating})
	})
	return imp.truncate(items), nil
}
