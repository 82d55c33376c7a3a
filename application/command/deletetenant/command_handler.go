package deletetenant

import (
	"context"
	"time"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// CommandHandler removes tenants.
type CommandHandler struct {
	repository application.TenantRepository
	support    application.Support
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(repository application.TenantRepository, options ...application.Option) CommandHandler {
	return CommandHandler{
		repository: repository,
		support:    application.NewSupport(options...),
	}
}

// Handle executes Get -> Delete -> MarkDeleted -> Publish and returns the removed tenant.
func (h CommandHandler) Handle(ctx context.Context, command Command) (*core.Tenant, error) {
	start := time.Now()

	tenant, err := h.handle(ctx, command)
	h.support.Observe(ctx, command.CommandType(), command.TenantID, start, err)

	return tenant, err
}

func (h CommandHandler) handle(ctx context.Context, command Command) (*core.Tenant, error) {
	tenant, err := h.repository.Get(ctx, command.TenantID)
	if err != nil {
		return nil, application.RepositoryError(err)
	}

	if err = core.ActorGuard(command.ActorID)(); err != nil {
		return nil, err
	}

	if err = h.repository.Delete(ctx, tenant.ID()); err != nil {
		return nil, application.RepositoryError(err)
	}

	if err = tenant.MarkDeleted(command.ActorID); err != nil {
		return nil, err
	}

	if err = h.support.Publish(ctx, tenant); err != nil {
		return tenant, err
	}

	return tenant, nil
}
