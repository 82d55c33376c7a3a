package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// TenantRepository is an in-memory application.TenantRepository.
// Like DocumentRepository it works on rehydrated copies.
type TenantRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	tenants  map[uuid.UUID]*core.Tenant
	failWith error
}

// NewTenantRepository creates an empty TenantRepository.
func NewTenantRepository() *TenantRepository {
	return &TenantRepository{tenants: make(map[uuid.UUID]*core.Tenant)}
}

// FailWith makes every following call return err. Pass nil to recover.
func (r *TenantRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failWith = err
}

// Save stores tenant, replacing a stored tenant with the same id.
func (r *TenantRepository) Save(_ context.Context, tenant *core.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	stored, err := copyTenant(tenant)
	if err != nil {
		return err
	}

	if _, ok := r.tenants[tenant.ID()]; !ok {
		r.order = append(r.order, tenant.ID())
	}

	r.tenants[tenant.ID()] = stored

	return nil
}

func (r *TenantRepository) Get(_ context.Context, tenantID uuid.UUID) (*core.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	tenant, ok := r.tenants[tenantID]
	if !ok {
		return nil, application.ErrTenantNotFound
	}

	return copyTenant(tenant)
}

func (r *TenantRepository) Update(_ context.Context, tenant *core.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.tenants[tenant.ID()]; !ok {
		return application.ErrTenantNotFound
	}

	stored, err := copyTenant(tenant)
	if err != nil {
		return err
	}

	r.tenants[tenant.ID()] = stored

	return nil
}

func (r *TenantRepository) Delete(_ context.Context, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.tenants[tenantID]; !ok {
		return application.ErrTenantNotFound
	}

	delete(r.tenants, tenantID)
	r.order = removeID(r.order, tenantID)

	return nil
}

func (r *TenantRepository) Exists(_ context.Context, tenantID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return false, r.failWith
	}

	_, ok := r.tenants[tenantID]

	return ok, nil
}

// ExistsByName compares names exactly.
func (r *TenantRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	matches, err := r.filter(func(t *core.Tenant) bool { return t.Name() == name })
	if err != nil {
		return false, err
	}

	return len(matches) > 0, nil
}

func (r *TenantRepository) All(_ context.Context) ([]*core.Tenant, error) {
	return r.filter(func(*core.Tenant) bool { return true })
}

func (r *TenantRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return 0, r.failWith
	}

	return len(r.tenants), nil
}

func (r *TenantRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]*core.Tenant, error) {
	return r.filter(func(t *core.Tenant) bool { return t.UserID() == userID })
}

func (r *TenantRepository) GetActives(_ context.Context) ([]*core.Tenant, error) {
	return r.filter(func(t *core.Tenant) bool { return t.IsActive() })
}

func (r *TenantRepository) GetInactives(_ context.Context) ([]*core.Tenant, error) {
	return r.filter(func(t *core.Tenant) bool { return !t.IsActive() })
}

func (r *TenantRepository) filter(match func(*core.Tenant) bool) ([]*core.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	result := make([]*core.Tenant, 0, len(r.order))
	for _, id := range r.order {
		tenant := r.tenants[id]
		if !match(tenant) {
			continue
		}

		detached, err := copyTenant(tenant)
		if err != nil {
			return nil, err
		}

		result = append(result, detached)
	}

	return result, nil
}

func copyTenant(tenant *core.Tenant) (*core.Tenant, error) {
	return core.NewTenant(
		core.TenantInput{
			Name:        tenant.Name(),
			Description: tenant.Description(),
			Logo:        tenant.Logo(),
			UserID:      tenant.UserID(),
			Deactivated: !tenant.IsActive(),
		},
		core.WithEntityID(tenant.ID()),
		core.WithCreatedAt(tenant.CreatedAt()),
		core.WithUpdatedAt(tenant.UpdatedAt()),
	)
}
