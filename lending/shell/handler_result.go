package shell

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

// HandlerResult is the outcome of a command handler execution:
// the business outcome (idempotency) plus the retry metadata the observable wrapper turns into metrics.
type HandlerResult struct {
	// Idempotent is true when the state already reflected the command and nothing was appended.
	Idempotent bool

	// RetryAttempts is the number of attempts made, 1 without retries.
	RetryAttempts int

	// TotalRetryDelay only counts the backoff waits, not the execution time.
	TotalRetryDelay time.Duration

	// LastErrorType is one of "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other".
	LastErrorType string

	// RetriesExhausted is true when every attempt failed with a retryable error.
	RetriesExhausted bool

	// RecordID is the borrow record the command closed, only ReturnBook sets it.
	RecordID core.RecordIDString
}

// WithRecordID returns a copy of r carrying recordID.
func (r HandlerResult) WithRecordID(recordID core.RecordIDString) HandlerResult {
	r.RecordID = recordID
	return r
}

// NewSuccessResult creates a HandlerResult for successful operations (non-idempotent).
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for failed operations, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return newHandlerResult(retryMetrics, false)
}

func newHandlerResult(retryMetrics RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
