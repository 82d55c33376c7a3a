package fixtures

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// GivenUniqueID generates a time-ordered UUID v7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	return id
}

// DocumentInput returns a valid DocumentInput for a draft report.
func DocumentInput(t testing.TB) core.DocumentInput {
	t.Helper()

	return core.DocumentInput{
		Title:        "Quarterly report",
		DocumentType: core.DocumentTypeReport,
		UserID:       GivenUniqueID(t),
		TenantID:     GivenUniqueID(t),
	}
}

// NewDocument creates a valid Document, applying modify to the input first.
func NewDocument(t testing.TB, modify ...func(*core.DocumentInput)) *core.Document {
	t.Helper()

	input := DocumentInput(t)
	for _, m := range modify {
		m(&input)
	}

	document, err := core.NewDocument(input)
	require.NoError(t, err)

	return document
}

// TenantInput returns a valid TenantInput for an active tenant.
func TenantInput(t testing.TB) core.TenantInput {
	t.Helper()

	return core.TenantInput{
		Name:        "Acme Ltda",
		Description: "Industrial supplies",
		Logo:        "https://cdn.example.com/acme.png",
		UserID:      GivenUniqueID(t),
	}
}

// NewTenant creates a valid Tenant, applying modify to the input first.
func NewTenant(t testing.TB, modify ...func(*core.TenantInput)) *core.Tenant {
	t.Helper()

	input := TenantInput(t)
	for _, m := range modify {
		m(&input)
	}

	tenant, err := core.NewTenant(input)
	require.NoError(t, err)

	return tenant
}
