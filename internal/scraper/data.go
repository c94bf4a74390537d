package scraper

import "github.com/rohmanhakim/liondine-api/internal/menu"

// Scrape boundary

type ScrapeResult struct {
	meal        menu.MealType
	text        string
	contentHash string
}

func (s *ScrapeResult) Meal() menu.MealType {
	return s.meal
}

// Text is the extracted page content in Markdown form. Scripts, styles, and
// navigation chrome are already removed.
func (s *ScrapeResult) Text() string {
	return s.text
}

// ContentHash is a short fingerprint of the extracted text, for log
// correlation only.
func (s *ScrapeResult) ContentHash() string {
	return s.contentHash
}

// NewScrapeResultForTest creates a ScrapeResult for testing purposes.
// This allows test packages to construct ScrapeResult values without
// accessing unexported fields directly.
func NewScrapeResultForTest(meal menu.MealType, text string, contentHash string) ScrapeResult {
	return ScrapeResult{
		meal:        meal,
		text:        text,
		contentHash: contentHash,
	}
}
