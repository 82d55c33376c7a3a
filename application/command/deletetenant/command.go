package deletetenant

import (
	"github.com/google/uuid"
)

const (
	commandType = "DeleteTenant"
)

// Command represents the intent to remove a tenant.
type Command struct {
	TenantID uuid.UUID
	ActorID  uuid.UUID
}

// CommandType returns the type of this command for observability purposes.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(tenantID uuid.UUID, actorID uuid.UUID) Command {
	return Command{
		TenantID: tenantID,
		ActorID:  actorID,
	}
}
