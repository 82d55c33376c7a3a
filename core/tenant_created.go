package core

import (
	"time"

	"github.com/google/uuid"
)

// TenantCreatedEventType is the event type identifier.
const TenantCreatedEventType = "tenant_created"

// BuildTenantCreated creates the event recorded when a tenant was created.
func BuildTenantCreated(tenantID uuid.UUID, userID uuid.UUID, occurredAt time.Time) DomainEvent {
	return BuildDomainEvent(
		TenantCreatedEventType,
		EventData{
			D(dataKeyTenantID, tenantID.String()),
			D(dataKeyUserID, userID.String()),
		},
		occurredAt,
	)
}
