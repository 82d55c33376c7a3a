package core

// DocumentType classifies a Document. The string values are the wire tags used in event payloads.
type DocumentType string

const (
	DocumentTypeReport                     DocumentType = "Relatório"
	DocumentTypeContract                   DocumentType = "Contrato"
	DocumentTypeProtocol                   DocumentType = "Protocolo"
	DocumentTypeStandardOperatingProcedure DocumentType = "POP"
	DocumentTypeTutorial                   DocumentType = "Tutorial"
	DocumentTypeManual                     DocumentType = "Manual"
	DocumentTypeOther                      DocumentType = "Outro"
)

// DocumentTypes returns all members of the DocumentType enumeration.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeReport,
		DocumentTypeContract,
		DocumentTypeProtocol,
		DocumentTypeStandardOperatingProcedure,
		DocumentTypeTutorial,
		DocumentTypeManual,
		DocumentTypeOther,
	}
}

// ParseDocumentType converts a wire tag into a DocumentType.
func ParseDocumentType(raw string) (DocumentType, error) {
	documentType := DocumentType(raw)
	if !documentType.IsValid() {
		return "", NewValidationError(fieldDocumentType, "unknown document type "+raw)
	}

	return documentType, nil
}

// IsValid reports whether t is a member of the enumeration.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeReport,
		DocumentTypeContract,
		DocumentTypeProtocol,
		DocumentTypeStandardOperatingProcedure,
		DocumentTypeTutorial,
		DocumentTypeManual,
		DocumentTypeOther:
		return true
	default:
		return false
	}
}

func (t DocumentType) String() string {
	return string(t)
}
