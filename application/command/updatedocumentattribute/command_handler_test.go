package updatedocumentattribute_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/application/command/updatedocumentattribute"
	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/shell"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/eventstore/estesthelpers"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/fixtures"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/memory"
)

func givenStoredDocument(t *testing.T, repository *memory.DocumentRepository) *core.Document {
	t.Helper()

	document := fixtures.NewDocument(t)
	require.NoError(t, repository.Save(context.Background(), document))

	return document
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	document := givenStoredDocument(t, repository)
	actorID := fixtures.GivenUniqueID(t)
	handler := updatedocumentattribute.NewCommandHandler(repository)

	// act
	updated, err := handler.Handle(ctx, updatedocumentattribute.BuildCommand(document.ID(), "title", "Annual report", actorID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Annual report", updated.Title())

	events := updated.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.DocumentUpdatedEventType, events[0].EventType())
	assert.Equal(t, []string{"document_id", "document_type", "user_id", "old_value", "new_value"}, events[0].Data().Keys())

	oldValue, _ := events[0].Data().Get("old_value")
	newValue, _ := events[0].Data().Get("new_value")
	userID, _ := events[0].Data().Get("user_id")
	assert.Equal(t, "Quarterly report", oldValue)
	assert.Equal(t, "Annual report", newValue)
	assert.Equal(t, actorID.String(), userID)
}

func Test_CommandHandler_Handle_SameValueIsNoOp(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	document := givenStoredDocument(t, repository)
	handler := updatedocumentattribute.NewCommandHandler(repository)

	// act
	updated, err := handler.Handle(
		ctx,
		updatedocumentattribute.BuildCommand(document.ID(), "title", document.Title(), fixtures.GivenUniqueID(t)),
	)

	// assert
	require.NoError(t, err)
	assert.Empty(t, updated.DrainEvents())
}

func Test_CommandHandler_Handle_PaddedSameTitleIsNoOp(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	document := givenStoredDocument(t, repository)
	appender := estesthelpers.NewAppenderSpy(0, nil)
	publisher, err := shell.NewEventPublisher(appender)
	require.NoError(t, err)
	handler := updatedocumentattribute.NewCommandHandler(repository, application.WithPublisher(publisher))

	// act
	updated, handleErr := handler.Handle(
		ctx,
		updatedocumentattribute.BuildCommand(document.ID(), "title", "  "+document.Title()+" ", fixtures.GivenUniqueID(t)),
	)

	// assert
	require.NoError(t, handleErr)
	assert.Empty(t, updated.DrainEvents())
	assert.Zero(t, appender.Calls())

	stored, getErr := repository.Get(ctx, document.ID())
	require.NoError(t, getErr)
	assert.Equal(t, document.UpdatedAt(), stored.UpdatedAt())
}

func Test_CommandHandler_Handle_PublishesUpdatedEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewDocumentRepository()
	document := givenStoredDocument(t, repository)
	store := estesthelpers.NewMemoryEventStore()
	publisher, err := shell.NewEventPublisher(store)
	require.NoError(t, err)
	handler := updatedocumentattribute.NewCommandHandler(repository, application.WithPublisher(publisher))
	actorID := fixtures.GivenUniqueID(t)

	// act
	_, handleErr := handler.Handle(
		ctx,
		updatedocumentattribute.BuildCommand(document.ID(), "status", core.DocumentStatusPublished, actorID),
	)

	// assert
	require.NoError(t, handleErr)
	assert.Empty(t, document.DrainEvents())

	stored, queryErr := store.Query(ctx, eventstore.BuildEventFilter().AnyEventTypeOf(core.DocumentUpdatedEventType).Finalize())
	require.NoError(t, queryErr)
	require.Len(t, stored, 1)
	assert.JSONEq(
		t,
		`{"document_id":"`+document.ID().String()+`","document_type":"Relatório","user_id":"`+
			actorID.String()+`","old_value":"Rascunho","new_value":"Publicado"}`,
		string(stored[0].PayloadJSON),
	)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		attribute   string
		value       any
		actorID     func(t testing.TB) uuid.UUID
		expectedErr error
	}{
		{
			name:        "unknown attribute",
			attribute:   "color",
			value:       "red",
			actorID:     fixtures.GivenUniqueID,
			expectedErr: core.ErrUnknownAttribute,
		},
		{
			name:        "wrong value type",
			attribute:   "version",
			value:       "2",
			actorID:     fixtures.GivenUniqueID,
			expectedErr: core.ErrAttributeUpdate,
		},
		{
			name:        "value rejected by the field",
			attribute:   "title",
			value:       "x",
			actorID:     fixtures.GivenUniqueID,
			expectedErr: core.ErrDomainValidation,
		},
		{
			name:        "missing actor",
			attribute:   "title",
			value:       "Annual report",
			actorID:     func(testing.TB) uuid.UUID { return uuid.Nil },
			expectedErr: core.ErrDomainValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			repository := memory.NewDocumentRepository()
			document := givenStoredDocument(t, repository)
			handler := updatedocumentattribute.NewCommandHandler(repository)

			// act
			updated, err := handler.Handle(
				context.Background(),
				updatedocumentattribute.BuildCommand(document.ID(), tc.attribute, tc.value, tc.actorID(t)),
			)

			// assert
			assert.Nil(t, updated)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, document.DrainEvents())
		})
	}
}

func Test_CommandHandler_Handle_DocumentNotFound(t *testing.T) {
	// arrange
	handler := updatedocumentattribute.NewCommandHandler(memory.NewDocumentRepository())

	// act
	updated, err := handler.Handle(
		context.Background(),
		updatedocumentattribute.BuildCommand(fixtures.GivenUniqueID(t), "title", "Annual report", fixtures.GivenUniqueID(t)),
	)

	// assert
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, application.ErrDocumentNotFound)
	assert.NotErrorIs(t, err, application.ErrRepositoryFailed)
}

func Test_CommandHandler_Handle_RepositoryFailure(t *testing.T) {
	// arrange
	repository := memory.NewDocumentRepository()
	document := givenStoredDocument(t, repository)
	repository.FailWith(errors.New("timeout"))
	handler := updatedocumentattribute.NewCommandHandler(repository)

	// act
	_, err := handler.Handle(
		context.Background(),
		updatedocumentattribute.BuildCommand(document.ID(), "title", "Annual report", fixtures.GivenUniqueID(t)),
	)

	// assert
	assert.ErrorIs(t, err, application.ErrRepositoryFailed)
}
