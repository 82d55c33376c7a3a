package updatedocumentattribute

import (
	"github.com/google/uuid"
)

const (
	commandType = "UpdateDocumentAttribute"
)

// Command represents the intent to change a single attribute of a document.
// Value must have the attribute's Go type, e.g. string for "title" or core.DocumentStatus for "status".
type Command struct {
	DocumentID uuid.UUID
	Attribute  string
	Value      any
	ActorID    uuid.UUID
}

// CommandType returns the type of this command for observability purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(documentID uuid.UUID, attribute string, value any, actorID uuid.UUID) Command {
	return Command{
		DocumentID: documentID,
		Attribute:  attribute,
		Value:      value,
		ActorID:    actorID,
	}
}
