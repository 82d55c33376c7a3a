package core

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCreatedEventType is the event type identifier.
const DocumentCreatedEventType = "document_created"

// BuildDocumentCreated creates the event recorded when a document was created.
func BuildDocumentCreated(
	documentID uuid.UUID,
	userID uuid.UUID,
	documentType DocumentType,
	occurredAt time.Time,
) DomainEvent {

	return BuildDomainEvent(
		DocumentCreatedEventType,
		EventData{
			D(dataKeyDocumentID, documentID.String()),
			D(dataKeyUserID, userID.String()),
			D(dataKeyDocumentType, documentType.String()),
		},
		occurredAt,
	)
}
