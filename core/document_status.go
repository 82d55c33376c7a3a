package core

// DocumentStatus is the lifecycle state of a Document. The string values are the wire tags used in event payloads.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "Rascunho"
	DocumentStatusPublished DocumentStatus = "Publicado"
	DocumentStatusArchived  DocumentStatus = "Arquivado"
	DocumentStatusDeleted   DocumentStatus = "Excluído"
)

// DocumentStatuses returns all members of the DocumentStatus enumeration.
func DocumentStatuses() []DocumentStatus {
	return []DocumentStatus{
		DocumentStatusDraft,
		DocumentStatusPublished,
		DocumentStatusArchived,
		DocumentStatusDeleted,
	}
}

// ParseDocumentStatus converts a wire tag into a DocumentStatus.
func ParseDocumentStatus(raw string) (DocumentStatus, error) {
	status := DocumentStatus(raw)
	if !status.IsValid() {
		return "", NewValidationError(fieldStatus, "unknown document status "+raw)
	}

	return status, nil
}

// IsValid reports whether s is a member of the enumeration.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPublished, DocumentStatusArchived, DocumentStatusDeleted:
		return true
	default:
		return false
	}
}

func (s DocumentStatus) String() string {
	return string(s)
}
