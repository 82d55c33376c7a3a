package core

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	tenantAggregateName = "Tenant"

	fieldName        = "name"
	fieldDescription = "description"
	fieldLogo        = "logo"
	fieldIsActive    = "is_active"

	minTenantNameLength      = 2
	maxTenantNameLength      = 255
	maxTenantDescriptionSize = 1000
)

// TenantInput carries the field values for NewTenant.
// Tenants are active unless Deactivated is set.
type TenantInput struct {
	Name        string
	Description string
	Logo        string
	UserID      uuid.UUID
	Deactivated bool
}

// Tenant is the aggregate for a company or organization that owns documents.
type Tenant struct {
	Entity

	name        string
	description string
	logo        string
	userID      uuid.UUID
	isActive    bool
}

var tenantAttributes = NewAttributeTable(
	tenantAggregateName,
	Attribute(fieldName, (*Tenant).Name, (*Tenant).SetName, renderString),
	Attribute(fieldDescription, (*Tenant).Description, (*Tenant).SetDescription, renderString),
	Attribute(fieldLogo, (*Tenant).Logo, (*Tenant).SetLogo, renderString),
	Attribute(fieldUserID, (*Tenant).UserID, (*Tenant).SetUserID, uuid.UUID.String),
	Attribute(fieldIsActive, (*Tenant).IsActive, (*Tenant).setActiveChecked, strconv.FormatBool),
)

// TenantAttributes returns the attributes that UpdateAttribute can change.
func TenantAttributes() AttributeTable[*Tenant] {
	return tenantAttributes
}

// NewTenant creates a Tenant, validating every field through its setter.
func NewTenant(input TenantInput, options ...EntityOption) (*Tenant, error) {
	tenant := &Tenant{Entity: NewEntity(options...), isActive: !input.Deactivated}

	for _, set := range []func() error{
		func() error { return tenant.SetName(input.Name) },
		func() error { return tenant.SetDescription(input.Description) },
		func() error { return tenant.SetLogo(input.Logo) },
		func() error { return tenant.SetUserID(input.UserID) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}

	return tenant, nil
}

// Name returns the tenant name.
func (t *Tenant) Name() string {
	return t.name
}

// SetName sets the name, which must be non-blank and between 2 and 255 characters long.
func (t *Tenant) SetName(name string) error {
	if err := ValidateText(fieldName, name); err != nil {
		return err
	}

	length := utf8.RuneCountInString(name)

	if length < minTenantNameLength {
		return NewValidationError(fieldName, fmt.Sprintf("must have at least %d characters", minTenantNameLength))
	}

	if length > maxTenantNameLength {
		return NewValidationError(fieldName, fmt.Sprintf("must not have more than %d characters", maxTenantNameLength))
	}

	t.name = name

	return nil
}

// Description returns the description.
func (t *Tenant) Description() string {
	return t.description
}

// SetDescription sets the description, which must be non-blank and at most 1000 characters long.
func (t *Tenant) SetDescription(description string) error {
	if err := ValidateText(fieldDescription, description); err != nil {
		return err
	}

	if utf8.RuneCountInString(description) > maxTenantDescriptionSize {
		return NewValidationError(
			fieldDescription,
			fmt.Sprintf("must not have more than %d characters", maxTenantDescriptionSize),
		)
	}

	t.description = description

	return nil
}

// Logo returns the logo reference.
func (t *Tenant) Logo() string {
	return t.logo
}

// SetLogo sets the logo reference.
func (t *Tenant) SetLogo(logo string) error {
	if err := ValidateText(fieldLogo, logo); err != nil {
		return err
	}

	t.logo = logo

	return nil
}

// UserID returns the id of the user that administers the tenant.
func (t *Tenant) UserID() uuid.UUID {
	return t.userID
}

// SetUserID sets the administering user.
func (t *Tenant) SetUserID(userID uuid.UUID) error {
	if err := validateIdentifier(fieldUserID, userID); err != nil {
		return err
	}

	t.userID = userID

	return nil
}

// IsActive reports whether the tenant is active.
func (t *Tenant) IsActive() bool {
	return t.isActive
}

// SetActive sets the activation flag.
func (t *Tenant) SetActive(active bool) {
	t.isActive = active
}

// Activate marks the tenant as active.
func (t *Tenant) Activate() {
	t.isActive = true
}

// Deactivate marks the tenant as inactive.
func (t *Tenant) Deactivate() {
	t.isActive = false
}

// UpdateAttribute changes the named attribute on behalf of actorID and records a tenant_updated event.
// It follows the same rules as Document.UpdateAttribute.
func (t *Tenant) UpdateAttribute(name string, value any, actorID uuid.UUID) error {
	change, err := tenantAttributes.Apply(t, name, value, ActorGuard(actorID))
	if err != nil {
		return err
	}

	if !change.Changed {
		return nil
	}

	t.Touch()
	t.Record(BuildTenantUpdated(t.ID(), actorID, change.OldValue, change.NewValue, t.UpdatedAt()))

	return nil
}

// MarkDeleted records a tenant_deleted event. Removing the tenant is up to its repository.
func (t *Tenant) MarkDeleted(actorID uuid.UUID) error {
	if err := validateIdentifier(fieldActorID, actorID); err != nil {
		return err
	}

	t.Touch()
	t.Record(BuildTenantDeleted(t.ID(), actorID, t.UpdatedAt()))

	return nil
}

func (t *Tenant) String() string {
	return fmt.Sprintf("Tenant(id=%s)", t.ID())
}

func (t *Tenant) setActiveChecked(active bool) error {
	t.SetActive(active)
	return nil
}
