package scraper

import (
	"fmt"

	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

type ScrapeErrorCause string

const (
	ErrCauseTimeout            ScrapeErrorCause = "timeout"
	ErrCauseNetworkFailure     ScrapeErrorCause = "network issues"
	ErrCauseUpstreamStatus     ScrapeErrorCause = "upstream status"
	ErrCauseContentTypeInvalid ScrapeErrorCause = "non-HTML content"
	ErrCauseEmptyPage          ScrapeErrorCause = "empty page"
	ErrCauseExtractionFailed   ScrapeErrorCause = "extraction failed"
)

type ScrapeError struct {
	Message   string
	Retryable bool
	Cause     ScrapeErrorCause
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape error: %s", e.Cause)
}

func (e *ScrapeError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *ScrapeError) IsRetryable() bool {
	return e.Retryable
}
