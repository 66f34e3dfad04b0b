package observable_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/observable"
	"github.com/AntonStoeckl/library-lending/testutil/testdoubles"
)

type testQuery struct{}

func (testQuery) QueryType() string    { return "TestQuery" }
func (testQuery) SnapshotType() string { return "TestQuery" }

type testResult struct {
	Count          int
	SequenceNumber uint
}

func (r testResult) GetSequenceNumber() uint { return r.SequenceNumber }

type stubQueryHandler struct {
	result testResult
	err    error
}

func (h stubQueryHandler) Handle(_ context.Context, _ testQuery) (testResult, error) {
	return h.result, h.err
}

func Test_QueryWrapper_Success(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()
	logs := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		stubQueryHandler{result: testResult{Count: 3, SequenceNumber: 9}},
		observable.WithQueryMetrics[testQuery, testResult](metrics),
		observable.WithQueryTracing[testQuery, testResult](tracing),
		observable.WithQueryLogging[testQuery, testResult](logs.NewLogger()),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), testQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.True(t, metrics.HasRecord(shell.QueryHandlerCallsMetric, map[string]string{"query_type": "TestQuery", "status": "success"}))
	assert.Len(t, tracing.SpansNamed(shell.SpanNameQueryHandle), 1)
	assert.True(t, logs.HasLog(slog.LevelInfo, shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Canceled(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	logs := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		stubQueryHandler{err: context.Canceled},
		observable.WithQueryMetrics[testQuery, testResult](metrics),
		observable.WithQueryContextualLogging[testQuery, testResult](logs.NewLogger()),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), testQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metrics.HasRecord(shell.QueryHandlerCanceledMetric, map[string]string{"query_type": "TestQuery"}))
	assert.True(t, logs.HasLog(slog.LevelError, shell.LogMsgQueryFailed))
}

func Test_QueryWrapper_NotFoundIsNotLoggedAsFailure(t *testing.T) {
	// arrange
	logs := testdoubles.NewLogHandlerSpy(false)

	wrapper, err := observable.NewQueryWrapper[testQuery, testResult](
		stubQueryHandler{err: core.BorrowerNotFound("r-1")},
		observable.WithQueryLogging[testQuery, testResult](logs.NewLogger()),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(t.Context(), testQuery{})

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.False(t, logs.HasLog(slog.LevelError, shell.LogMsgQueryFailed))
	assert.True(t, logs.HasLog(slog.LevelInfo, shell.LogMsgQueryCompleted))
}
