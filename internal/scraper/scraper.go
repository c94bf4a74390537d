package scraper

import (
	"context"

	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

// PageScraper defines the interface for retrieving the raw menu text of a
// meal period from the upstream menu site. Implementations return cleaned,
// structure-preserving text ready for the structurer, or a ClassifiedError.
//
// The scraper performs no retries; a failed fetch surfaces immediately.
type PageScraper interface {
	Scrape(ctx context.Context, meal menu.MealType) (ScrapeResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ PageScraper = (*HTMLScraper)(nil)
