package core

const (
	dataKeyDocumentID   = "document_id"
	dataKeyDocumentType = "document_type"
	dataKeyTenantID     = "tenant_id"
	dataKeyUserID       = "user_id"
	dataKeyOldValue     = "old_value"
	dataKeyNewValue     = "new_value"
)

// KnownEventTypes returns the event types the aggregates of this package record.
func KnownEventTypes() []string {
	return []string{
		DocumentCreatedEventType,
		DocumentUpdatedEventType,
		DocumentDeletedEventType,
		TenantCreatedEventType,
		TenantUpdatedEventType,
		TenantDeletedEventType,
	}
}

// IsKnownEventType reports whether eventType is one of KnownEventTypes.
func IsKnownEventType(eventType string) bool {
	for _, known := range KnownEventTypes() {
		if known == eventType {
			return true
		}
	}

	return false
}
