package core

import (
	"time"

	"github.com/google/uuid"
)

// TenantUpdatedEventType is the event type identifier.
const TenantUpdatedEventType = "tenant_updated"

// BuildTenantUpdated creates the event recorded when an attribute of a tenant changed.
func BuildTenantUpdated(
	tenantID uuid.UUID,
	userID uuid.UUID,
	oldValue string,
	newValue string,
	occurredAt time.Time,
) DomainEvent {

	return BuildDomainEvent(
		TenantUpdatedEventType,
		EventData{
			D(dataKeyTenantID, tenantID.String()),
			D(dataKeyUserID, userID.String()),
			D(dataKeyOldValue, oldValue),
			D(dataKeyNewValue, newValue),
		},
		occurredAt,
	)
}
