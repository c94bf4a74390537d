package pipeline

import (
	"fmt"

	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

type AcquireErrorCause string

const (
	// Caller error: the request itself must change before a retry can help.
	ErrCauseInvalidMealType AcquireErrorCause = "invalid meal type"

	// Upstream and data-quality errors: potentially transient, the caller
	// may retry or bypass-cache-retry later.
	ErrCauseUpstreamFetchFailed AcquireErrorCause = "upstream fetch failed"
	ErrCauseInsufficientContent AcquireErrorCause = "insufficient content"
	ErrCauseStructuringFailed   AcquireErrorCause = "structuring failed"
	ErrCauseSchemaInvalid       AcquireErrorCause = "schema invalid"

	// Only reachable through the persistent store variant's construction;
	// the in-memory store cannot fail.
	ErrCauseCacheUnavailable AcquireErrorCause = "cache unavailable"
)

type AcquireError struct {
	Message   string
	Retryable bool
	Cause     AcquireErrorCause
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire error: %s", e.Cause)
}

func (e *AcquireError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *AcquireError) IsRetryable() bool {
	return e.Retryable
}
