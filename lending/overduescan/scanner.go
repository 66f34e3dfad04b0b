package overduescan

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overduerecords"
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

const (
	logMsgScanCompleted  = "overdue scan completed"
	logMsgOverdueRecord  = "overdue borrow record"
	logMsgScanFailed     = "overdue scan failed"
	logMsgScannerStopped = "overdue scanner stopped"

	logAttrOverdueCount = "overdue_count"
	logAttrRecordID     = "record_id"
	logAttrBookID       = "book_id"
	logAttrBookTitle    = "book_title"
	logAttrBorrowerID   = "borrower_id"
	logAttrBorrowerName = "borrower_name"
	logAttrDueDate      = "due_date"
	logAttrDaysOverdue  = "days_overdue"
)

var (
	ErrNilQueryHandler     = errors.New("query handler must not be nil")
	ErrNonPositiveInterval = errors.New("scan interval must be positive")
)

// Scanner runs the overduerecords query and logs what it finds.
type Scanner struct {
	queryHandler     shell.QueryHandler[overduerecords.Query, overduerecords.OverdueRecords]
	now              func() time.Time
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
}

type Option func(*Scanner)

func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

func WithLogging(logger shell.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(s *Scanner) {
		s.contextualLogger = logger
	}
}

func NewScanner(
	queryHandler shell.QueryHandler[overduerecords.Query, overduerecords.OverdueRecords],
	opts ...Option,
) (*Scanner, error) {

	if queryHandler == nil {
		return nil, ErrNilQueryHandler
	}

	s := &Scanner{queryHandler: queryHandler, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Scan returns the number of overdue records as of now.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	today := s.now()

	result, err := s.queryHandler.Handle(ctx, overduerecords.BuildQuery(today))
	if err != nil {
		shell.LogError(ctx, s.logger, s.contextualLogger, logMsgScanFailed, shell.LogAttrError, err.Error())
		return 0, err
	}

	for _, record := range result.Records {
		shell.LogInfo(ctx, s.logger, s.contextualLogger, logMsgOverdueRecord,
			logAttrRecordID, record.RecordID,
			logAttrBookID, record.BookID,
			logAttrBookTitle, record.BookTitle,
			logAttrBorrowerID, record.BorrowerID,
			logAttrBorrowerName, record.BorrowerName,
			logAttrDueDate, record.DueDate.Format(time.DateOnly),
			logAttrDaysOverdue, core.DaysLate(record.DueDate, core.ToDay(today)),
		)
	}

	shell.LogInfo(ctx, s.logger, s.contextualLogger, logMsgScanCompleted, logAttrOverdueCount, result.Count)

	return result.Count, nil
}

// Run scans every interval until ctx is done. A failed scan is logged and does not stop the loop.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrNonPositiveInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shell.LogInfo(ctx, s.logger, s.contextualLogger, logMsgScannerStopped)
			return nil
		case <-ticker.C:
			_, _ = s.Scan(ctx) // logged inside Scan
		}
	}
}
