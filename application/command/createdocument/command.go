package createdocument

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

const (
	commandType = "CreateDocument"
)

// Command represents the intent to create a new draft document.
type Command struct {
	Title        string
	DocumentType core.DocumentType
	UserID       uuid.UUID
	TenantID     uuid.UUID
}

// CommandType returns the type of this command for observability purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(title string, documentType core.DocumentType, userID uuid.UUID, tenantID uuid.UUID) Command {
	return Command{
		Title:        title,
		DocumentType: documentType,
		UserID:       userID,
		TenantID:     tenantID,
	}
}
