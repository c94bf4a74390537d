package structurer

import (
	"fmt"

	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

type StructureErrorCause string

const (
	ErrCauseCompletionFailed StructureErrorCause = "completion request failed"
	ErrCauseEmptyResponse    StructureErrorCause = "empty response"
	ErrCauseMalformedJSON    StructureErrorCause = "malformed json"
	ErrCauseSchemaViolation  StructureErrorCause = "schema violation"
)

type StructureError struct {
	Message   string
	Retryable bool
	Cause     StructureErrorCause
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s", e.Cause)
}

func (e *StructureError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
