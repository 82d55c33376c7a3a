package createdocument_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/application/command/createdocument"
	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/shell"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/eventstore/estesthelpers"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/fixtures"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/memory"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/observability/testdoubles"
)

func buildValidCommand(t *testing.T) createdocument.Command {
	t.Helper()

	return createdocument.BuildCommand(
		"Quarterly report",
		core.DocumentTypeReport,
		fixtures.GivenUniqueID(t),
		fixtures.GivenUniqueID(t),
	)
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	handler := createdocument.NewCommandHandler(repository, application.NewDocumentService())
	command := buildValidCommand(t)

	// act
	document, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, command.Title, document.Title())
	assert.Equal(t, core.DocumentStatusDraft, document.Status())
	assert.Equal(t, command.TenantID, document.TenantID())

	stored, getErr := repository.Get(ctx, document.ID())
	require.NoError(t, getErr)
	assert.Equal(t, document.ID(), stored.ID())
	assert.Equal(t, document.Title(), stored.Title())
	assert.Equal(t, document.CreatedAt(), stored.CreatedAt())

	events := document.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.DocumentCreatedEventType, events[0].EventType())
	documentType, _ := events[0].Data().Get("document_type")
	assert.Equal(t, "Relatório", documentType)
	userID, _ := events[0].Data().Get("user_id")
	assert.Equal(t, command.UserID.String(), userID)
}

func Test_CommandHandler_Handle_PublishesCreatedEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := estesthelpers.NewMemoryEventStore()
	publisher, err := shell.NewEventPublisher(store)
	require.NoError(t, err)
	handler := createdocument.NewCommandHandler(
		memory.NewDocumentRepository(),
		application.NewDocumentService(),
		application.WithPublisher(publisher),
	)

	// act
	document, handleErr := handler.Handle(ctx, buildValidCommand(t))

	// assert
	require.NoError(t, handleErr)
	assert.Empty(t, document.DrainEvents())

	stored, queryErr := store.Query(ctx, eventstore.BuildEventFilter().ForAggregateIDs(document.ID()).Finalize())
	require.NoError(t, queryErr)
	require.Len(t, stored, 1)
	assert.Equal(t, core.DocumentCreatedEventType, stored[0].EventType)
}

func Test_CommandHandler_Handle_InvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		command func(t *testing.T) createdocument.Command
	}{
		{
			name: "blank title",
			command: func(t *testing.T) createdocument.Command {
				c := buildValidCommand(t)
				c.Title = "   "
				return c
			},
		},
		{
			name: "unknown document type",
			command: func(t *testing.T) createdocument.Command {
				c := buildValidCommand(t)
				c.DocumentType = "Memorando"
				return c
			},
		},
		{
			name: "missing user",
			command: func(t *testing.T) createdocument.Command {
				c := buildValidCommand(t)
				c.UserID = uuid.Nil
				return c
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			repository := memory.NewDocumentRepository()
			handler := createdocument.NewCommandHandler(repository, application.NewDocumentService())

			// act
			document, err := handler.Handle(context.Background(), tc.command(t))

			// assert
			assert.Nil(t, document)
			assert.ErrorIs(t, err, core.ErrDomainValidation)

			count, countErr := repository.Count(context.Background())
			require.NoError(t, countErr)
			assert.Zero(t, count)
		})
	}
}

func Test_CommandHandler_Handle_RepositoryFailure(t *testing.T) {
	// arrange
	repository := memory.NewDocumentRepository()
	repository.FailWith(errors.New("connection reset"))
	handler := createdocument.NewCommandHandler(repository, application.NewDocumentService())

	// act
	document, err := handler.Handle(context.Background(), buildValidCommand(t))

	// assert
	assert.Nil(t, document)
	assert.ErrorIs(t, err, application.ErrRepositoryFailed)
	assert.ErrorContains(t, err, "connection reset")
}

func Test_CommandHandler_Handle_PublishingFailureKeepsEventsBuffered(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	publisher, err := shell.NewEventPublisher(estesthelpers.NewAppenderSpy(1, errors.New("disk full")))
	require.NoError(t, err)
	handler := createdocument.NewCommandHandler(
		repository,
		application.NewDocumentService(),
		application.WithPublisher(publisher),
	)

	// act
	document, handleErr := handler.Handle(ctx, buildValidCommand(t))

	// assert
	assert.ErrorIs(t, handleErr, shell.ErrPublishingEventsFailed)
	require.NotNil(t, document)
	assert.Len(t, document.DrainEvents(), 1)

	exists, existsErr := repository.Exists(ctx, document.ID())
	require.NoError(t, existsErr)
	assert.True(t, exists)
}

func Test_CommandHandler_Handle_Observability(t *testing.T) {
	// arrange
	logSpy := testdoubles.NewLogHandlerSpy(false)
	metricsSpy := testdoubles.NewMetricsCollectorSpy()
	handler := createdocument.NewCommandHandler(
		memory.NewDocumentRepository(),
		application.NewDocumentService(),
		application.WithLogger(slog.New(logSpy)),
		application.WithMetrics(metricsSpy),
	)
	invalid := buildValidCommand(t)
	invalid.Title = ""

	// act
	document, err := handler.Handle(context.Background(), buildValidCommand(t))
	_, invalidErr := handler.Handle(context.Background(), invalid)

	// assert
	require.NoError(t, err)
	require.Error(t, invalidErr)
	assert.True(t, logSpy.HasInfoLogWithMessage(application.LogMsgCommandCompleted).
		WithAttributeValue(application.LogAttrCommandType, "CreateDocument").
		WithAttributeValue(application.LogAttrAggregateID, document.ID().String()).
		Assert())
	assert.True(t, logSpy.HasErrorLogWithMessage(application.LogMsgCommandFailed).
		WithAttributeValue(application.LogAttrCommandType, "CreateDocument").
		Assert())
	assert.True(t, metricsSpy.HasDurationRecordWithStatus(application.CommandHandlerDurationMetric, "success"))
	assert.True(t, metricsSpy.HasDurationRecordWithStatus(application.CommandHandlerDurationMetric, "error"))
	assert.True(t, metricsSpy.HasCounterRecord(application.CommandHandlerErrorsMetric))
}
