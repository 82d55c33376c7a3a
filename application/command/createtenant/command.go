package createtenant

import (
	"github.com/google/uuid"
)

const (
	commandType = "CreateTenant"
)

// Command represents the intent to create a new active tenant.
type Command struct {
	Name        string
	Description string
	Logo        string
	UserID      uuid.UUID
}

// CommandType returns the type of this command for observability purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(name string, description string, logo string, userID uuid.UUID) Command {
	return Command{
		Name:        name,
		Description: description,
		Logo:        logo,
		UserID:      userID,
	}
}
