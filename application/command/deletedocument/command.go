package deletedocument

import (
	"github.com/google/uuid"
)

const (
	commandType = "DeleteDocument"
)

// Command represents the intent to soft-delete a document.
// A nil ActorID deletes the document on behalf of its owner.
type Command struct {
	DocumentID uuid.UUID
	ActorID    uuid.UUID
}

// CommandType returns the type of this command for observability purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(documentID uuid.UUID, actorID uuid.UUID) Command {
	return Command{
		DocumentID: documentID,
		ActorID:    actorID,
	}
}
