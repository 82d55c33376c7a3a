package core

import (
	"time"

	"github.com/google/uuid"
)

// DocumentDeletedEventType is the event type identifier.
const DocumentDeletedEventType = "document_deleted"

// BuildDocumentDeleted creates the event recorded when a document was soft-deleted.
func BuildDocumentDeleted(documentID uuid.UUID, userID uuid.UUID, occurredAt time.Time) DomainEvent {
	return BuildDomainEvent(
		DocumentDeletedEventType,
		EventData{
			D(dataKeyDocumentID, documentID.String()),
			D(dataKeyUserID, userID.String()),
		},
		occurredAt,
	)
}
