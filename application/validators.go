package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

const ruleUniqueTenantName = "unique_tenant_name"

// DocumentValidator checks a document before a handler persists it.
type DocumentValidator interface {
	Validate(ctx context.Context, document *core.Document) error
}

// TenantValidator checks a tenant before a handler persists it.
type TenantValidator interface {
	Validate(ctx context.Context, tenant *core.Tenant) error
}

// DocumentService is the default DocumentValidator.
// It re-checks the fields every document must carry, independent of how the document was built.
type DocumentService struct{}

// NewDocumentService creates a DocumentService.
func NewDocumentService() DocumentService {
	return DocumentService{}
}

// Validate returns a *core.ValidationError for a blank title, an unknown type or a missing owner.
func (DocumentService) Validate(_ context.Context, document *core.Document) error {
	if strings.TrimSpace(document.Title()) == "" {
		return core.NewValidationError("title", "must not be empty")
	}

	if !document.DocumentType().IsValid() {
		return core.NewValidationError("document_type", fmt.Sprintf("unknown document type %q", document.DocumentType()))
	}

	if document.UserID() == uuid.Nil {
		return core.NewValidationError("user_id", "must not be empty")
	}

	return nil
}

// TenantService is the default TenantValidator. Tenant names are unique.
type TenantService struct {
	repository TenantRepository
}

// NewTenantService creates a TenantService that looks up names in repository.
func NewTenantService(repository TenantRepository) TenantService {
	return TenantService{repository: repository}
}

// Validate returns a *core.BusinessRuleViolationError if another tenant already uses the name.
func (s TenantService) Validate(ctx context.Context, tenant *core.Tenant) error {
	exists, err := s.repository.ExistsByName(ctx, tenant.Name())
	if err != nil {
		return RepositoryError(err)
	}

	if exists {
		return core.NewBusinessRuleViolationError(
			ruleUniqueTenantName,
			fmt.Sprintf("a tenant named %q already exists", tenant.Name()),
		)
	}

	return nil
}
