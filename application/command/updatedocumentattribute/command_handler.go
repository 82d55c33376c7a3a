package updatedocumentattribute

import (
	"context"
	"time"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// CommandHandler updates document attributes.
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

// Handle executes Get -> UpdateAttribute -> Update -> Publish.
// Setting the current value again returns the unchanged document without persisting it.
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

	recordedBefore := len(document.DrainEvents())

	if err = document.UpdateAttribute(command.Attribute, command.Value, command.ActorID); err != nil {
		return nil, err
	}

	if len(document.DrainEvents()) == recordedBefore {
		return document, nil
	}

	if err = h.repository.Update(ctx, document); err != nil {
		return nil, application.RepositoryError(err)
	}

	if err = h.support.Publish(ctx, document); err != nil {
		return document, err
	}

	return document, nil
}
