package core

import (
	"time"

	"github.com/google/uuid"
)

// DocumentUpdatedEventType is the event type identifier.
const DocumentUpdatedEventType = "document_updated"

// BuildDocumentUpdated creates the event recorded when an attribute of a document changed.
// userID is the actor who made the change, not the document owner.
func BuildDocumentUpdated(
	documentID uuid.UUID,
	documentType DocumentType,
	userID uuid.UUID,
	oldValue string,
	newValue string,
	occurredAt time.Time,
) DomainEvent {

	return BuildDomainEvent(
		DocumentUpdatedEventType,
		EventData{
			D(dataKeyDocumentID, documentID.String()),
			D(dataKeyDocumentType, documentType.String()),
			D(dataKeyUserID, userID.String()),
			D(dataKeyOldValue, oldValue),
			D(dataKeyNewValue, newValue),
		},
		occurredAt,
	)
}
