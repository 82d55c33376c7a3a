package contract

// Status is the commercial lifecycle state of a Contract. The string values are the wire tags.
type Status string

const (
	StatusDraft     Status = "Rascunho"
	StatusApproved  Status = "Aprovado"
	StatusRejected  Status = "Rejeitado"
	StatusCancelled Status = "Cancelado"
	StatusPending   Status = "Pendente"
	StatusActive    Status = "Ativo"
	StatusInactive  Status = "Inativo"
)

// IsValid reports whether s is a member of the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusRejected, StatusCancelled, StatusPending, StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Type classifies a Contract. The string values are the wire tags.
type Type string

const (
	TypeService     Type = "Serviços"
	TypeSales       Type = "Vendas"
	TypeRental      Type = "Aluguel"
	TypePartnership Type = "Parceria"
	TypeOther       Type = "Outro"
)

// IsValid reports whether t is a member of the enumeration.
func (t Type) IsValid() bool {
	switch t {
	case TypeService, TypeSales, TypeRental, TypePartnership, TypeOther:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(t)
}
