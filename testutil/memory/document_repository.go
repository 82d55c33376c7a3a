package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/application"
	"github.com/AntonStoeckl/document-aggregates-go/core"
)

// DocumentRepository is an in-memory application.DocumentRepository.
// It stores and hands out rehydrated copies, so changes to a loaded document
// only reach the repository through Save or Update. Copies carry no buffered events.
type DocumentRepository struct {
	mu        sync.RWMutex
	order     []uuid.UUID
	documents map[uuid.UUID]*core.Document
	failWith  error
}

// NewDocumentRepository creates an empty DocumentRepository.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{documents: make(map[uuid.UUID]*core.Document)}
}

// FailWith makes every following call return err. Pass nil to recover.
func (r *DocumentRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failWith = err
}

// Save stores document, replacing a stored document with the same id.
func (r *DocumentRepository) Save(_ context.Context, document *core.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	stored, err := copyDocument(document)
	if err != nil {
		return err
	}

	if _, ok := r.documents[document.ID()]; !ok {
		r.order = append(r.order, document.ID())
	}

	r.documents[document.ID()] = stored

	return nil
}

func (r *DocumentRepository) Get(_ context.Context, documentID uuid.UUID) (*core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	document, ok := r.documents[documentID]
	if !ok {
		return nil, application.ErrDocumentNotFound
	}

	return copyDocument(document)
}

func (r *DocumentRepository) Update(_ context.Context, document *core.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.documents[document.ID()]; !ok {
		return application.ErrDocumentNotFound
	}

	stored, err := copyDocument(document)
	if err != nil {
		return err
	}

	r.documents[document.ID()] = stored

	return nil
}

func (r *DocumentRepository) Delete(_ context.Context, documentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.documents[documentID]; !ok {
		return application.ErrDocumentNotFound
	}

	delete(r.documents, documentID)
	r.order = removeID(r.order, documentID)

	return nil
}

func (r *DocumentRepository) Exists(_ context.Context, documentID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return false, r.failWith
	}

	_, ok := r.documents[documentID]

	return ok, nil
}

func (r *DocumentRepository) All(_ context.Context) ([]*core.Document, error) {
	return r.filter(func(*core.Document) bool { return true })
}

func (r *DocumentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return 0, r.failWith
	}

	return len(r.documents), nil
}

func (r *DocumentRepository) GetByDocumentType(
	_ context.Context,
	documentType core.DocumentType,
) ([]*core.Document, error) {
	return r.filter(func(d *core.Document) bool { return d.DocumentType() == documentType })
}

func (r *DocumentRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]*core.Document, error) {
	return r.filter(func(d *core.Document) bool { return d.UserID() == userID })
}

func (r *DocumentRepository) GetByStatus(_ context.Context, status core.DocumentStatus) ([]*core.Document, error) {
	return r.filter(func(d *core.Document) bool { return d.Status() == status })
}

func (r *DocumentRepository) GetByTenantID(_ context.Context, tenantID uuid.UUID) ([]*core.Document, error) {
	return r.filter(func(d *core.Document) bool { return d.BelongsToTenant(tenantID) })
}

func (r *DocumentRepository) filter(match func(*core.Document) bool) ([]*core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	result := make([]*core.Document, 0, len(r.order))
	for _, id := range r.order {
		document := r.documents[id]
		if !match(document) {
			continue
		}

		detached, err := copyDocument(document)
		if err != nil {
			return nil, err
		}

		result = append(result, detached)
	}

	return result, nil
}

func copyDocument(document *core.Document) (*core.Document, error) {
	return core.NewDocument(
		core.DocumentInput{
			Title:        document.Title(),
			DocumentType: document.DocumentType(),
			UserID:       document.UserID(),
			TenantID:     document.TenantID(),
			Version:      document.Version(),
			Status:       document.Status(),
		},
		core.WithEntityID(document.ID()),
		core.WithCreatedAt(document.CreatedAt()),
		core.WithUpdatedAt(document.UpdatedAt()),
	)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}
