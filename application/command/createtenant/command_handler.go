package createtenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// CommandHandler creates tenants.
type CommandHandler struct {
	repository application.TenantRepository
	validator  application.TenantValidator
	support    application.Support
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(
	repository application.TenantRepository,
	validator application.TenantValidator,
	options ...application.Option,
) CommandHandler {
	return CommandHandler{
		repository: repository,
		validator:  validator,
		support:    application.NewSupport(options...),
	}
}

// Handle executes New -> Validate -> Save -> Record -> Publish.
func (h CommandHandler) Handle(ctx context.Context, command Command) (*core.Tenant, error) {
	start := time.Now()

	tenant, err := h.handle(ctx, command)

	aggregateID := uuid.Nil
	if tenant != nil {
		aggregateID = tenant.ID()
	}

	h.support.Observe(ctx, command.CommandType(), aggregateID, start, err)

	return tenant, err
}

func (h CommandHandler) handle(ctx context.Context, command Command) (*core.Tenant, error) {
	tenant, err := core.NewTenant(core.TenantInput{
		Name:        command.Name,
		Description: command.Description,
		Logo:        command.Logo,
		UserID:      command.UserID,
	})
	if err != nil {
		return nil, err
	}

	if err = h.validator.Validate(ctx, tenant); err != nil {
		return nil, err
	}

	if err = h.repository.Save(ctx, tenant); err != nil {
		return nil, application.RepositoryError(err)
	}

	tenant.Record(core.BuildTenantCreated(tenant.ID(), tenant.UserID(), tenant.CreatedAt()))

	if err = h.support.Publish(ctx, tenant); err != nil {
		return tenant, err
	}

	return tenant, nil
}
