package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	documentAggregateName = "Document"

	fieldTitle        = "title"
	fieldUserID       = "user_id"
	fieldVersion      = "version"
	fieldDocumentType = "document_type"
	fieldStatus       = "status"
	fieldTenantID     = "tenant_id"
	fieldActorID      = "actor_id"

	minTitleLength = 2
	minVersion     = 1
)

// DocumentInput carries the field values for NewDocument.
// A zero Version becomes 1 and an empty Status becomes DocumentStatusDraft.
type DocumentInput struct {
	Title        string
	DocumentType DocumentType
	UserID       uuid.UUID
	TenantID     uuid.UUID
	Version      int
	Status       DocumentStatus
}

// Document is the aggregate for a versioned business document that belongs to a tenant.
type Document struct {
	Entity

	title        string
	userID       uuid.UUID
	version      int
	documentType DocumentType
	status       DocumentStatus
	tenantID     uuid.UUID
}

var documentAttributes = NewAttributeTable(
	documentAggregateName,
	Attribute(fieldTitle, (*Document).Title, (*Document).SetTitle, renderString),
	Attribute(fieldUserID, (*Document).UserID, (*Document).SetUserID, uuid.UUID.String),
	Attribute(fieldVersion, (*Document).Version, (*Document).SetVersion, strconv.Itoa),
	Attribute(fieldDocumentType, (*Document).DocumentType, (*Document).SetDocumentType, DocumentType.String),
	Attribute(fieldStatus, (*Document).Status, (*Document).SetStatus, DocumentStatus.String),
	Attribute(fieldTenantID, (*Document).TenantID, (*Document).SetTenantID, uuid.UUID.String),
)

// DocumentAttributes returns the attributes that UpdateAttribute can change.
func DocumentAttributes() AttributeTable[*Document] {
	return documentAttributes
}

// NewDocument creates a Document, validating every field through its setter.
// Use the EntityOption values to rehydrate a stored document.
func NewDocument(input DocumentInput, options ...EntityOption) (*Document, error) {
	if input.Version == 0 {
		input.Version = minVersion
	}

	if input.Status == "" {
		input.Status = DocumentStatusDraft
	}

	document := &Document{Entity: NewEntity(options...)}

	for _, set := range []func() error{
		func() error { return document.SetTitle(input.Title) },
		func() error { return document.SetDocumentType(input.DocumentType) },
		func() error { return document.SetUserID(input.UserID) },
		func() error { return document.SetTenantID(input.TenantID) },
		func() error { return document.SetVersion(input.Version) },
		func() error { return document.SetStatus(input.Status) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}

	return document, nil
}

// Title returns the title.
func (d *Document) Title() string {
	return d.title
}

// SetTitle sets the trimmed title, which must have at least two characters.
func (d *Document) SetTitle(title string) error {
	if err := ValidateText(fieldTitle, title); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(title)

	if utf8.RuneCountInString(trimmed) < minTitleLength {
		return NewValidationError(fieldTitle, fmt.Sprintf("must have at least %d characters", minTitleLength))
	}

	d.title = trimmed

	return nil
}

// UserID returns the id of the owning user.
func (d *Document) UserID() uuid.UUID {
	return d.userID
}

// SetUserID sets the owning user.
func (d *Document) SetUserID(userID uuid.UUID) error {
	if err := validateIdentifier(fieldUserID, userID); err != nil {
		return err
	}

	d.userID = userID

	return nil
}

// Version returns the version number.
func (d *Document) Version() int {
	return d.version
}

// SetVersion sets the version number, which must be at least 1.
func (d *Document) SetVersion(version int) error {
	if version < minVersion {
		return NewValidationError(fieldVersion, fmt.Sprintf("must be at least %d, got %d", minVersion, version))
	}

	d.version = version

	return nil
}

// IncrementVersion raises the version by one on behalf of actorID and records a document_updated event.
// It fails like UpdateAttribute for a nil actorID.
func (d *Document) IncrementVersion(actorID uuid.UUID) error {
	return d.UpdateAttribute(fieldVersion, d.version+1, actorID)
}

// DocumentType returns the document type.
func (d *Document) DocumentType() DocumentType {
	return d.documentType
}

// SetDocumentType sets the document type.
func (d *Document) SetDocumentType(documentType DocumentType) error {
	if !documentType.IsValid() {
		return NewValidationError(fieldDocumentType, fmt.Sprintf("unknown document type %q", documentType))
	}

	d.documentType = documentType

	return nil
}

// Status returns the lifecycle status.
func (d *Document) Status() DocumentStatus {
	return d.status
}

// SetStatus sets the status directly. Only enum membership is checked;
// use Publish, Archive and Delete for guarded transitions.
func (d *Document) SetStatus(status DocumentStatus) error {
	if !status.IsValid() {
		return NewValidationError(fieldStatus, fmt.Sprintf("unknown document status %q", status))
	}

	d.status = status

	return nil
}

// TenantID returns the id of the owning tenant.
func (d *Document) TenantID() uuid.UUID {
	return d.tenantID
}

// SetTenantID sets the owning tenant.
func (d *Document) SetTenantID(tenantID uuid.UUID) error {
	if err := validateIdentifier(fieldTenantID, tenantID); err != nil {
		return err
	}

	d.tenantID = tenantID

	return nil
}

// BelongsToTenant reports whether the document is owned by tenantID.
func (d *Document) BelongsToTenant(tenantID uuid.UUID) bool {
	return d.tenantID == tenantID
}

// IsDraft reports whether the status is draft.
func (d *Document) IsDraft() bool {
	return d.status == DocumentStatusDraft
}

// IsPublished reports whether the status is published.
func (d *Document) IsPublished() bool {
	return d.status == DocumentStatusPublished
}

// IsArchived reports whether the status is archived.
func (d *Document) IsArchived() bool {
	return d.status == DocumentStatusArchived
}

// IsDeleted reports whether the document was soft-deleted.
func (d *Document) IsDeleted() bool {
	return d.status == DocumentStatusDeleted
}

// Publish moves the document to published. It fails with a *ValidationError if the document is deleted.
func (d *Document) Publish() error {
	return d.transitionTo(DocumentStatusPublished, "a deleted document cannot be published")
}

// Archive moves the document to archived. It fails with a *ValidationError if the document is deleted.
func (d *Document) Archive() error {
	return d.transitionTo(DocumentStatusArchived, "a deleted document cannot be archived")
}

// Delete soft-deletes the document on behalf of its owner, see DeleteBy.
func (d *Document) Delete() {
	d.DeleteBy(uuid.Nil)
}

// DeleteBy soft-deletes the document. It is idempotent; only the first transition into
// deleted records a document_deleted event. A nil actorID records the owner as actor.
func (d *Document) DeleteBy(actorID uuid.UUID) {
	if d.IsDeleted() {
		return
	}

	if actorID == uuid.Nil {
		actorID = d.userID
	}

	d.status = DocumentStatusDeleted
	d.Touch()
	d.Record(BuildDocumentDeleted(d.ID(), actorID, d.UpdatedAt()))
}

// UpdateAttribute changes the named attribute on behalf of actorID and records a document_updated event.
//
// Setting the current value again is a no-op. Unknown names fail with *UnknownAttributeError;
// values of the wrong type, a nil actorID or values the field's setter rejects fail with *AttributeUpdateError.
func (d *Document) UpdateAttribute(name string, value any, actorID uuid.UUID) error {
	change, err := documentAttributes.Apply(d, name, value, ActorGuard(actorID))
	if err != nil {
		return err
	}

	d.RecordAttributeChange(change, actorID)

	return nil
}

// RecordAttributeChange refreshes the modification time and records a document_updated event
// for a change produced by an AttributeTable. Unchanged results are ignored.
// Aggregates that embed Document use it after applying their own attribute table.
func (d *Document) RecordAttributeChange(change AttributeChange, actorID uuid.UUID) {
	if !change.Changed {
		return
	}

	d.Touch()
	d.Record(BuildDocumentUpdated(d.ID(), d.documentType, actorID, change.OldValue, change.NewValue, d.UpdatedAt()))
}

func (d *Document) String() string {
	return fmt.Sprintf("Document(id=%s, document_type=%s)", d.ID(), d.documentType)
}

func (d *Document) transitionTo(target DocumentStatus, deletedReason string) error {
	if d.IsDeleted() {
		return NewValidationError(fieldStatus, deletedReason)
	}

	d.status = target
	d.Touch()

	return nil
}

// ActorGuard returns an AttributeTable.Apply guard that rejects a nil actor id.
func ActorGuard(actorID uuid.UUID) func() error {
	return func() error {
		return validateIdentifier(fieldActorID, actorID)
	}
}

func renderString(value string) string {
	return value
}
