package deletedocument

import (
	"context"
	"time"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// CommandHandler soft-deletes documents.
type CommandHandler struct {
	repository application.DocumentRepository
	support    application.Support
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(repository application.DocumentRepository, options ...application.Option) CommandHandler {
	return CommandHandler{
		repository: repository,
		support:    application.NewSupport(options...),
	}
}

// Handle executes Get -> DeleteBy -> Update -> Publish.
func (h CommandHandler) Handle(ctx context.Context, command Command) (*core.Document, error) {
	start := time.Now()

	document, err := h.handle(ctx, command)
	h.support.Observe(ctx, command.CommandType(), command.DocumentID, start, err)

	return document, err
}

func (h CommandHandler) handle(ctx context.Context, command Command) (*core.Document, error) {
	document, err := h.repository.Get(ctx, command.DocumentID)
	if err != nil {
		return nil, application.RepositoryError(err)
	}

	if document.IsDeleted() {
		return document, nil // idempotent
	}

	document.DeleteBy(command.ActorID)

	if err = h.repository.Update(ctx, document); err != nil {
		return nil, application.RepositoryError(err)
	}

	if err = h.support.Publish(ctx, document); err != nil {
		return document, err
	}

	return document, nil
}
