package createtenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/application/command/createtenant"
	"github.com/AntonStoeckl/document-aggregates-go/core"
	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
	"github.com/AntonStoeckl/document-aggregates-go/shell"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/eventstore/estesthelpers"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/fixtures"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/memory"
	"github.com/AntonStoeckl/document-aggregates-go/testutil/observability/testdoubles"
)

func newHandler(repository *memory.TenantRepository, options ...application.Option) createtenant.CommandHandler {
	return createtenant.NewCommandHandler(repository, application.NewTenantService(repository), options...)
}

func validCommand(t testing.TB, name string) createtenant.Command {
	t.Helper()

	input := fixtures.TenantInput(t)

	return createtenant.BuildCommand(name, input.Description, input.Logo, input.UserID)
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewTenantRepository()
	handler := newHandler(repository)
	command := validCommand(t, "Acme Ltda")

	// act
	tenant, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltda", tenant.Name())
	assert.Equal(t, command.Description, tenant.Description())
	assert.Equal(t, command.Logo, tenant.Logo())
	assert.Equal(t, command.UserID, tenant.UserID())
	assert.True(t, tenant.IsActive())

	actives, activesErr := repository.GetActives(ctx)
	require.NoError(t, activesErr)
	require.Len(t, actives, 1)
	assert.Equal(t, tenant.ID(), actives[0].ID())

	events := tenant.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, core.TenantCreatedEventType, events[0].EventType())
	assert.WithinDuration(t, tenant.CreatedAt(), events[0].OccurredAt(), time.Microsecond)
}

func Test_CommandHandler_Handle_DuplicateName(t *testing.T) {
	// arrange
	ctx := context.Background()
	repository := memory.NewTenantRepository()
	handler := newHandler(repository)
	_, err := handler.Handle(ctx, validCommand(t, "Acme Ltda"))
	require.NoError(t, err)

	// act
	tenant, err := handler.Handle(ctx, validCommand(t, "Acme Ltda"))

	// assert
	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, core.ErrBusinessRuleViolation)

	var violation *core.BusinessRuleViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "unique_tenant_name", violation.Rule)

	count, countErr := repository.Count(ctx)
	require.NoError(t, countErr)
	assert.Equal(t, 1, count)
}

func Test_CommandHandler_Handle_InvalidInput(t *testing.T) {
	// arrange
	handler := newHandler(memory.NewTenantRepository())

	// act
	tenant, err := handler.Handle(context.Background(), createtenant.BuildCommand("", "", "", uuid.Nil))

	// assert
	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, core.ErrDomainValidation)
}

func Test_CommandHandler_Handle_RepositoryFailure(t *testing.T) {
	// arrange
	repository := memory.NewTenantRepository()
	repository.FailWith(errors.New("connection refused"))
	handler := newHandler(repository)

	// act
	tenant, err := handler.Handle(context.Background(), validCommand(t, "Acme Ltda"))

	// assert
	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, application.ErrRepositoryFailed)
	assert.NotErrorIs(t, err, core.ErrDomainValidation)
}

func Test_CommandHandler_Handle_PublishesAndObserves(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := estesthelpers.NewMemoryEventStore()
	publisher, err := shell.NewEventPublisher(store)
	require.NoError(t, err)
	logger := testdoubles.NewContextualLoggerSpy()
	handler := newHandler(
		memory.NewTenantRepository(),
		application.WithPublisher(publisher),
		application.WithContextualLogger(logger),
	)

	// act
	tenant, handleErr := handler.Handle(ctx, validCommand(t, "Acme Ltda"))

	// assert
	require.NoError(t, handleErr)
	assert.Empty(t, tenant.DrainEvents())
	assert.True(t, logger.HasRecord("info", application.LogMsgCommandCompleted))

	stored, queryErr := store.Query(ctx, eventstore.BuildEventFilter().ForAggregateIDs(tenant.ID()).Finalize())
	require.NoError(t, queryErr)
	require.Len(t, stored, 1)
	assert.Equal(t, core.TenantCreatedEventType, stored[0].EventType)
}
