package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

func Test_BorrowRecord_Lifecycle(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	record := core.BorrowRecordFrom(core.BuildBookBorrowed("rec-1", "b-1", "r-1", borrowedAt))

	// act
	overdueOnDueDate := record.IsOverdue(record.DueDate.Add(12 * time.Hour))
	overdueDayAfter := record.IsOverdue(record.DueDate.AddDate(0, 0, 1))
	closed := record.Close(core.BuildBookReturned("rec-1", "b-1", "r-1", decimal.NewFromInt(5), borrowedAt.AddDate(0, 0, 15)))
	closedAgain := closed.Close(core.BuildBookReturned("rec-1", "b-1", "r-1", decimal.NewFromInt(50), borrowedAt.AddDate(0, 0, 30)))

	// assert
	assert.True(t, record.IsOpen())
	assert.False(t, overdueOnDueDate)
	assert.True(t, overdueDayAfter)
	require.NotNil(t, closed.ReturnDate)
	assert.False(t, closed.IsOpen())
	assert.False(t, closed.IsOverdue(borrowedAt.AddDate(1, 0, 0)), "closed records are never overdue")
	assert.Equal(t, closed, closedAgain, "a record is closed exactly once")
	assert.True(t, decimal.NewFromInt(5).Equal(closedAgain.FineAmount))
}

func Test_DecisionResult(t *testing.T) {
	// arrange
	event := core.BuildBookBorrowed("rec-1", "b-1", "r-1", time.Now())

	// act
	idempotent := core.IdempotentDecision()
	success := core.SuccessDecision(event)
	failure := core.ErrorDecision(core.BookNotAvailable("b-1"))

	// assert
	assert.True(t, idempotent.IsIdempotent())
	assert.False(t, idempotent.HasEventToAppend())
	assert.NoError(t, idempotent.HasError())

	assert.True(t, success.HasEventToAppend())
	assert.Equal(t, event, success.Event)
	assert.NoError(t, success.HasError())

	assert.False(t, failure.HasEventToAppend(), "rejected commands append nothing")
	assert.ErrorIs(t, failure.HasError(), core.ErrUnavailable)
}
