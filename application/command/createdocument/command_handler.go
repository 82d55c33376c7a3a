package createdocument

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// CommandHandler creates documents.
type CommandHandler struct {
	repository application.DocumentRepository
	validator  application.DocumentValidator
	support    application.Support
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(
	repository application.DocumentRepository,
	validator application.DocumentValidator,
	options ...application.Option,
) CommandHandler {
	return CommandHandler{
		repository: repository,
		validator:  validator,
		support:    application.NewSupport(options...),
	}
}

// Handle executes New -> Validate -> Save -> Record -> Publish.
//
// If only publishing fails, the saved document is returned together with the error
// and still buffers its document_created event.
func (h CommandHandler) Handle(ctx context.Context, command Command) (*core.Document, error) {
	start := time.Now()

	document, err := h.handle(ctx, command)

	aggregateID := uuid.Nil
	if document != nil {
		aggregateID = document.ID()
	}

	h.support.Observe(ctx, command.CommandType(), aggregateID, start, err)

	return document, err
}

func (h CommandHandler) handle(ctx context.Context, command Command) (*core.Document, error) {
	document, err := core.NewDocument(core.DocumentInput{
		Title:        command.Title,
		DocumentType: command.DocumentType,
		UserID:       command.UserID,
		TenantID:     command.TenantID,
	})
	if err != nil {
		return nil, err
	}

	if err = h.validator.Validate(ctx, document); err != nil {
		return nil, err
	}

	if err = h.repository.Save(ctx, document); err != nil {
		return nil, application.RepositoryError(err)
	}

	document.Record(core.BuildDocumentCreated(
		document.ID(),
		document.UserID(),
		document.DocumentType(),
		document.CreatedAt(),
	))

	if err = h.support.Publish(ctx, document); err != nil {
		return document, err
	}

	return document, nil
}
