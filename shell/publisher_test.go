package shell_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/shell"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/eventstore/estesthelpers"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/fixtures"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/observability/testdoubles"
)

func Test_NewEventPublisher_NilAppender(t *testing.T) {
	// act
	publisher, err := shell.NewEventPublisher(nil)

	// assert
	assert.Nil(t, publisher)
	assert.ErrorIs(t, err, shell.ErrNilAppender)
}

func Test_NewEventPublisher_InvalidMaxConcurrency(t *testing.T) {
	// act
	publisher, err := shell.NewEventPublisher(estesthelpers.NewMemoryEventStore(), shell.WithMaxConcurrency(0))

	// assert
	assert.Nil(t, publisher)
	assert.ErrorIs(t, err, shell.ErrInvalidMaxConcurrency)
}

func Test_EventPublisher_Publish_EmptyBufferIsNoop(t *testing.T) {
	// arrange
	appender := estesthelpers.NewAppenderSpy(0, nil)
	publisher, err := shell.NewEventPublisher(appender)
	require.NoError(t, err)
	document := fixtures.NewDocument(t)

	// act
	publishErr := publisher.Publish(context.Background(), document)

	// assert
	assert.NoError(t, publishErr)
	assert.Zero(t, appender.Calls())
}

func Test_EventPublisher_Publish_AppendsAndClears(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := estesthelpers.NewMemoryEventStore()
	logHandler := testdoubles.NewLogHandlerSpy(false)
	metrics := testdoubles.NewMetricsCollectorSpy()
	publisher, err := shell.NewEventPublisher(
		store,
		shell.WithPublisherLogger(slog.New(logHandler)),
		shell.WithPublisherMetrics(metrics),
	)
	require.NoError(t, err)

	document := fixtures.NewDocument(t)
	actorID := fixtures.GivenUniqueID(t)
	require.NoError(t, document.UpdateAttribute("title", "Annual report", actorID))
	document.Delete()

	// act
	publishErr := publisher.Publish(ctx, document)

	// assert
	require.NoError(t, publishErr)
	assert.Empty(t, document.DrainEvents())

	stored, queryErr := store.Query(ctx, eventstore.BuildEventFilter().ForAggregateIDs(document.ID()).Finalize())
	require.NoError(t, queryErr)
	require.Len(t, stored, 2)
	assert.Equal(t, core.DocumentUpdatedEventType, stored[0].EventType)
	assert.Equal(t, core.DocumentDeletedEventType, stored[1].EventType)

	assert.True(t, logHandler.HasInfoLogWithMessage("domain events published").WithAttribute("event_count").Assert())
	assert.True(t, metrics.HasDurationRecordWithStatus("publisher_publish_duration_seconds", "success"))
}

func Test_EventPublisher_Publish_RetriesTransientFailures(t *testing.T) {
	// arrange
	appender := estesthelpers.NewAppenderSpy(2, eventstore.ErrAppendingEventFailed)
	publisher, err := shell.NewEventPublisher(
		appender,
		shell.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)
	require.NoError(t, err)

	tenant := fixtures.NewTenant(t)
	require.NoError(t, tenant.MarkDeleted(fixtures.GivenUniqueID(t)))

	// act
	publishErr := publisher.Publish(context.Background(), tenant)

	// assert
	require.NoError(t, publishErr)
	assert.Equal(t, 3, appender.Calls())
	require.Len(t, appender.Appended(), 1)
	assert.Equal(t, tenant.ID(), appender.Appended()[0].AggregateID)
	assert.Empty(t, tenant.DrainEvents())
}

func Test_EventPublisher_Publish_FailureKeepsBuffer(t *testing.T) {
	// arrange
	permanent := errors.New("disk full")
	appender := estesthelpers.NewAppenderSpy(1, permanent)
	logHandler := testdoubles.NewLogHandlerSpy(false)
	publisher, err := shell.NewEventPublisher(appender, shell.WithPublisherLogger(slog.New(logHandler)))
	require.NoError(t, err)

	document := fixtures.NewDocument(t)
	document.Delete()

	// act
	publishErr := publisher.Publish(context.Background(), document)

	// assert
	assert.ErrorIs(t, publishErr, shell.ErrPublishingEventsFailed)
	assert.ErrorIs(t, publishErr, permanent)
	assert.Equal(t, 1, appender.Calls())
	assert.Len(t, document.DrainEvents(), 1)
	assert.True(t, logHandler.HasErrorLogWithMessage("publishing domain events failed").Assert())
}

func Test_EventPublisher_PublishAll(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := estesthelpers.NewMemoryEventStore()
	publisher, err := shell.NewEventPublisher(store, shell.WithMaxConcurrency(2))
	require.NoError(t, err)

	first := fixtures.NewDocument(t)
	first.Delete()
	second := fixtures.NewDocument(t)
	second.Delete()
	tenant := fixtures.NewTenant(t)
	require.NoError(t, tenant.UpdateAttribute("name", "Acme S.A.", fixtures.GivenUniqueID(t)))

	// act
	publishErr := publisher.PublishAll(ctx, first, second, tenant)

	// assert
	require.NoError(t, publishErr)
	assert.Equal(t, 3, store.Count())
	assert.Empty(t, first.DrainEvents())
	assert.Empty(t, second.DrainEvents())
	assert.Empty(t, tenant.DrainEvents())
}
