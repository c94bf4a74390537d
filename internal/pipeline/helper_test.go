package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/cache"
	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/internal/scraper"
	"github.com/rohmanhakim/liondine-api/internal/structurer"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

// fakeScraper returns a canned result or error, delegating to scrapeFn when
// set so tests can count calls or inject delays.
type fakeScraper struct {
	scrapeFn func(ctx context.Context, meal menu.MealType) (scraper.ScrapeResult, failure.ClassifiedError)
}

func (f *fakeScraper) Scrape(ctx context.Context, meal menu.MealType) (scraper.ScrapeResult, failure.ClassifiedError) {
	return f.scrapeFn(ctx, meal)
}

type fakeStructurer struct {
	structureFn func(ctx context.Context, text string, meal menu.MealType) (menu.MenuData, failure.ClassifiedError)
}

func (f *fakeStructurer) Structure(ctx context.Context, text string, meal menu.MealType) (menu.MenuData, failure.ClassifiedError) {
	return f.structureFn(ctx, text, meal)
}

var _ scraper.PageScraper = (*fakeScraper)(nil)
var _ structurer.Structurer = (*fakeStructurer)(nil)

func menuFixture(meal menu.MealType) menu.MenuData {
	return menu.MenuData{
		MealType:  meal,
		Timestamp: time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC),
		DiningHalls: []menu.DiningHall{
			{
				Name:   "John Jay",
				Hours:  "11:00 AM to 2:00 PM",
				Status: menu.StatusOpen,
				Stations: []menu.Station{
					{Name: "Main Line", Items: []string{"Roasted Chicken"}},
				},
			},
		},
	}
}

// longText comfortably clears the default content floor.
var longText = strings.Repeat("Main Line: Roasted Chicken. ", 10)

func happyScraper() *fakeScraper {
	return &fakeScraper{
		scrapeFn: func(ctx context.Context, m menu.MealType) (scraper.ScrapeResult, failure.ClassifiedError) {
			return scraper.NewScrapeResultForTest(m, longText, "abc123def456"), nil
		},
	}
}

func happyStructurer() *fakeStructurer {
	return &fakeStructurer{
		structureFn: func(ctx context.Context, text string, meal menu.MealType) (menu.MenuData, failure.ClassifiedError) {
			return menuFixture(meal), nil
		},
	}
}

func newTestStore() *cache.MemoryStore {
	return cache.NewMemoryStoreForTest(cache.DefaultLifetime, time.Now)
}
