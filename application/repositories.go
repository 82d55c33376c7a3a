package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

var (
	// ErrDocumentNotFound is returned by a DocumentRepository for unknown document ids.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrTenantNotFound is returned by a TenantRepository for unknown tenant ids.
	ErrTenantNotFound = errors.New("tenant not found")
)

// DocumentRepository persists documents. Implementations live outside this module.
type DocumentRepository interface {
	Save(ctx context.Context, document *core.Document) error
	Get(ctx context.Context, documentID uuid.UUID) (*core.Document, error)
	Update(ctx context.Context, document *core.Document) error
	Delete(ctx context.Context, documentID uuid.UUID) error
	Exists(ctx context.Context, documentID uuid.UUID) (bool, error)
	All(ctx context.Context) ([]*core.Document, error)
	Count(ctx context.Context) (int, error)
	GetByDocumentType(ctx context.Context, documentType core.DocumentType) ([]*core.Document, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*core.Document, error)
	GetByStatus(ctx context.Context, status core.DocumentStatus) ([]*core.Document, error)
	GetByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*core.Document, error)
}

// TenantRepository persists tenants. Implementations live outside this module.
type TenantRepository interface {
	Save(ctx context.Context, tenant *core.Tenant) error
	Get(ctx context.Context, tenantID uuid.UUID) (*core.Tenant, error)
	Update(ctx context.Context, tenant *core.Tenant) error
	Delete(ctx context.Context, tenantID uuid.UUID) error
	Exists(ctx context.Context, tenantID uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	All(ctx context.Context) ([]*core.Tenant, error)
	Count(ctx context.Context) (int, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*core.Tenant, error)
	GetActives(ctx context.Context) ([]*core.Tenant, error)
	GetInactives(ctx context.Context) ([]*core.Tenant, error)
}
