package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rohmanhakim/liondine-api/internal/cache"
	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/internal/scraper"
	"github.com/rohmanhakim/liondine-api/internal/structurer"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

/*
Service is the sole sequencing authority of the acquisition pipeline.

Acquisition guarantees:
- Service is the ONLY component that decides between cache and upstream.
- Validation of the meal period happens before any other work.
- A record reaches the store only after the structurer accepted it;
  no partial record is ever written.
- Collaborators may detect and classify failure, but never decide
  continuation: every error propagates to the caller with its kind intact.
- No retry happens here. Retry policy belongs to the caller.

Concurrent misses for the same cache key collapse onto a single
scrape-structure run; all waiting callers share its outcome.
*/

// DefaultMinContentLength is the floor under which a scraped page is treated
// as a partial or blocked response rather than handed to the structurer,
// where it would be silently misinterpreted.
const DefaultMinContentLength = 100

type Service struct {
	store            cache.Store
	scraper          scraper.PageScraper
	structurer       structurer.Structurer
	minContentLength int
	group            singleflight.Group
	logger           *zap.Logger
}

func NewService(
	store cache.Store,
	pageScraper scraper.PageScraper,
	menuStructurer structurer.Structurer,
	minContentLength int,
	logger *zap.Logger,
) *Service {
	if minContentLength <= 0 {
		minContentLength = DefaultMinContentLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:            store,
		scraper:          pageScraper,
		structurer:       menuStructurer,
		minContentLength: minContentLength,
		logger:           logger,
	}
}

// Acquire returns the structured menu for rawMeal, serving from the cache
// when possible. bypassCache forces a fresh upstream run; the result still
// overwrites the cache so later requests benefit.
func (s *Service) Acquire(ctx context.Context, rawMeal string, bypassCache bool) (AcquireResult, failure.ClassifiedError) {
	meal, err := menu.ParseMealType(rawMeal)
	if err != nil {
		return AcquireResult{}, &AcquireError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidMealType,
		}
	}

	if !bypassCache {
		if data, ok := s.store.Get(meal); ok {
			return AcquireResult{data: data, fromCache: true}, nil
		}
	}

	data, acquireErr := s.acquireFresh(ctx, meal)
	if acquireErr != nil {
		return AcquireResult{}, acquireErr
	}
	return AcquireResult{data: data, fromCache: false}, nil
}

// acquireFresh runs the scrape-structure-store sequence, deduplicated per
// cache key: concurrent callers that miss on the same key join one in-flight
// run instead of each hitting the upstream.
func (s *Service) acquireFresh(ctx context.Context, meal menu.MealType) (menu.MenuData, failure.ClassifiedError) {
	key := cache.Key(meal, time.Now())

	// The in-flight run is shared by every caller that joins it, so it must
	// not die with the one caller whose context happens to drive it.
	runCtx := context.WithoutCancel(ctx)

	value, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.fetchAndStructure(runCtx, meal)
	})
	if err != nil {
		var classified failure.ClassifiedError
		if errors.As(err, &classified) {
			return menu.MenuData{}, classified
		}
		return menu.MenuData{}, &AcquireError{
			Message:   err.Error(),
			Retryable: true,
			Cause:     ErrCauseUpstreamFetchFailed,
		}
	}

	if shared {
		s.logger.Debug("joined in-flight acquisition", zap.String("key", key))
	}

	return value.(menu.MenuData), nil
}

func (s *Service) fetchAndStructure(ctx context.Context, meal menu.MealType) (menu.MenuData, error) {
	s.logger.Info("fetching fresh menu data", zap.String("meal", meal.String()))

	scraped, scrapeErr := s.scraper.Scrape(ctx, meal)
	if scrapeErr != nil {
		return menu.MenuData{}, &AcquireError{
			Message:   scrapeErr.Error(),
			Retryable: true,
			Cause:     ErrCauseUpstreamFetchFailed,
		}
	}

	if chars := utf8.RuneCountInString(scraped.Text()); chars < s.minContentLength {
		return menu.MenuData{}, &AcquireError{
			Message: fmt.Sprintf("scraped text is %d characters, below the %d-character floor",
				chars, s.minContentLength),
			Retryable: true,
			Cause:     ErrCauseInsufficientContent,
		}
	}

	data, structErr := s.structurer.Structure(ctx, scraped.Text(), meal)
	if structErr != nil {
		return menu.MenuData{}, &AcquireError{
			Message:   structErr.Error(),
			Retryable: true,
			Cause:     mapStructureErrorCause(structErr),
		}
	}

	s.store.Put(meal, data)
	return data, nil
}

// mapStructureErrorCause maps structurer-local error semantics to the
// acquire-level taxonomy: a record that parsed but fails the top-level shape
// check is a schema problem; everything else is a structuring failure.
func mapStructureErrorCause(err failure.ClassifiedError) AcquireErrorCause {
	var structErr *structurer.StructureError
	if errors.As(err, &structErr) && structErr.Cause == structurer.ErrCauseSchemaViolation {
		return ErrCauseSchemaInvalid
	}
	return ErrCauseStructuringFailed
}
