package core

import (
	"time"

	"github.com/google/uuid"
)

// TenantDeletedEventType is the event type identifier.
const TenantDeletedEventType = "tenant_deleted"

// BuildTenantDeleted creates the event recorded when a tenant was removed.
func BuildTenantDeleted(tenantID uuid.UUID, userID uuid.UUID, occurredAt time.Time) DomainEvent {
	return BuildDomainEvent(
		TenantDeletedEventType,
		EventData{
			D(dataKeyTenantID, tenantID.String()),
			D(dataKeyUserID, userID.String()),
		},
		occurredAt,
	)
}
