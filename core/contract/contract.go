package contract

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/document-aggregates-go/core"
)

const (
	aggregateName = "Contract"
	dateLayout    = time.DateOnly

	fieldDocumentType     = "document_type"
	fieldSubject          = "subject"
	fieldDescription      = "description"
	fieldAmount           = "amount"
	fieldNumber           = "number"
	fieldDepartmentID     = "department_id"
	fieldFolderID         = "folder_id"
	fieldPartyIDs         = "party_ids"
	fieldStartDate        = "start_date"
	fieldEndDate          = "end_date"
	fieldNotes            = "notes"
	fieldSlug             = "slug"
	fieldIsAdditional     = "is_additional"
	fieldEmailSend        = "email_send"
	fieldLGPD             = "lgpd"
	fieldAutomaticRenewal = "automatic_renewal"
	fieldContractStatus   = "contract_status"
	fieldContractType     = "contract_type"
)

// Input carries the field values for NewContract.
// An empty Document.DocumentType becomes core.DocumentTypeContract, an empty Status
// becomes StatusDraft and an empty Type becomes TypeOther. A zero EndDate means open-ended.
type Input struct {
	Document         core.DocumentInput
	Subject          string
	Description      string
	Amount           int64
	Number           int
	DepartmentID     uuid.UUID
	FolderID         uuid.UUID
	PartyIDs         []uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	Notes            string
	Slug             string
	IsAdditional     bool
	EmailSend        bool
	LGPD             bool
	AutomaticRenewal bool
	Status           Status
	Type             Type
}

// Contract is a Document of type contract with commercial terms.
// Amount is kept in minor currency units.
type Contract struct {
	*core.Document

	subject          string
	description      string
	amount           int64
	number           int
	departmentID     uuid.UUID
	folderID         uuid.UUID
	partyIDs         []uuid.UUID
	startDate        time.Time
	endDate          time.Time
	notes            string
	slug             string
	isAdditional     bool
	emailSend        bool
	lgpd             bool
	automaticRenewal bool
	status           Status
	contractType     Type
}

var attributes = core.NewAttributeTable(
	aggregateName,
	core.LiftAttributes(core.DocumentAttributes(), func(c *Contract) *core.Document { return c.Document })...,
).With(
	core.Attribute(fieldDocumentType, (*Contract).DocumentType, (*Contract).SetDocumentType, core.DocumentType.String),
	core.Attribute(fieldSubject, (*Contract).Subject, (*Contract).SetSubject, nil),
	core.Attribute(fieldDescription, (*Contract).Description, (*Contract).SetDescription, nil),
	core.Attribute(fieldAmount, (*Contract).Amount, (*Contract).SetAmount, formatAmount),
	core.Attribute(fieldNumber, (*Contract).Number, (*Contract).SetNumber, strconv.Itoa),
	core.Attribute(fieldDepartmentID, (*Contract).DepartmentID, (*Contract).SetDepartmentID, uuid.UUID.String),
	core.Attribute(fieldFolderID, (*Contract).FolderID, (*Contract).SetFolderID, uuid.UUID.String),
	core.AttributeFunc(fieldPartyIDs, (*Contract).PartyIDs, (*Contract).SetPartyIDs, slices.Equal[[]uuid.UUID], formatIDs),
	core.AttributeFunc(fieldStartDate, (*Contract).StartDate, (*Contract).SetStartDate, sameDate, formatDate),
	core.AttributeFunc(fieldEndDate, (*Contract).EndDate, (*Contract).SetEndDate, sameDate, formatDate),
	core.Attribute(fieldNotes, (*Contract).Notes, setter((*Contract).setNotes), nil),
	core.Attribute(fieldSlug, (*Contract).Slug, setter((*Contract).setSlug), nil),
	core.Attribute(fieldIsAdditional, (*Contract).IsAdditional, setter((*Contract).setIsAdditional), strconv.FormatBool),
	core.Attribute(fieldEmailSend, (*Contract).EmailSend, setter((*Contract).setEmailSend), strconv.FormatBool),
	core.Attribute(fieldLGPD, (*Contract).LGPD, setter((*Contract).setLGPD), strconv.FormatBool),
	core.Attribute(
		fieldAutomaticRenewal, (*Contract).AutomaticRenewal, setter((*Contract).setAutomaticRenewal), strconv.FormatBool,
	),
	core.Attribute(fieldContractStatus, (*Contract).ContractStatus, (*Contract).SetContractStatus, Status.String),
	core.Attribute(fieldContractType, (*Contract).ContractType, (*Contract).SetContractType, Type.String),
)

// Attributes returns the attributes that UpdateAttribute can change:
// all Document attributes plus the contract's own.
func Attributes() core.AttributeTable[*Contract] {
	return attributes
}

// NewContract creates a Contract, validating every field through its setter.
func NewContract(input Input, options ...core.EntityOption) (*Contract, error) {
	if input.Document.DocumentType == "" {
		input.Document.DocumentType = core.DocumentTypeContract
	}

	if input.Document.DocumentType != core.DocumentTypeContract {
		return nil, errNotAContract(input.Document.DocumentType)
	}

	if input.Status == "" {
		input.Status = StatusDraft
	}

	if input.Type == "" {
		input.Type = TypeOther
	}

	document, err := core.NewDocument(input.Document, options...)
	if err != nil {
		return nil, err
	}

	c := &Contract{
		Document:         document,
		notes:            input.Notes,
		slug:             input.Slug,
		isAdditional:     input.IsAdditional,
		emailSend:        input.EmailSend,
		lgpd:             input.LGPD,
		automaticRenewal: input.AutomaticRenewal,
		endDate:          normalizeDate(input.EndDate),
	}

	for _, set := range []func() error{
		func() error { return c.SetSubject(input.Subject) },
		func() error { return c.SetDescription(input.Description) },
		func() error { return c.SetAmount(input.Amount) },
		func() error { return c.SetNumber(input.Number) },
		func() error { return c.SetDepartmentID(input.DepartmentID) },
		func() error { return c.SetFolderID(input.FolderID) },
		func() error { return c.SetPartyIDs(input.PartyIDs) },
		func() error { return c.SetStartDate(input.StartDate) },
		func() error { return c.SetContractStatus(input.Status) },
		func() error { return c.SetContractType(input.Type) },
	} {
		if err = set(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// SetDocumentType only accepts core.DocumentTypeContract; a contract cannot become another kind of document.
func (c *Contract) SetDocumentType(documentType core.DocumentType) error {
	if documentType != core.DocumentTypeContract {
		return errNotAContract(documentType)
	}

	return c.Document.SetDocumentType(documentType)
}

// Subject returns the subject.
func (c *Contract) Subject() string {
	return c.subject
}

// SetSubject sets the subject, which must not be blank.
func (c *Contract) SetSubject(subject string) error {
	if err := core.ValidateText(fieldSubject, subject); err != nil {
		return err
	}

	c.subject = subject

	return nil
}

// Description returns the description.
func (c *Contract) Description() string {
	return c.description
}

// SetDescription sets the description, which must not be blank.
func (c *Contract) SetDescription(description string) error {
	if err := core.ValidateText(fieldDescription, description); err != nil {
		return err
	}

	c.description = description

	return nil
}

// Amount returns the contract value in minor currency units.
func (c *Contract) Amount() int64 {
	return c.amount
}

// SetAmount sets the contract value in minor currency units; it must not be negative.
func (c *Contract) SetAmount(amount int64) error {
	if amount < 0 {
		return core.NewValidationError(fieldAmount, "must not be negative")
	}

	c.amount = amount

	return nil
}

// Number returns the contract number.
func (c *Contract) Number() int {
	return c.number
}

// SetNumber sets the contract number, which must be positive.
func (c *Contract) SetNumber(number int) error {
	if number < 1 {
		return core.NewValidationError(fieldNumber, "must be positive")
	}

	c.number = number

	return nil
}

// DepartmentID returns the responsible department.
func (c *Contract) DepartmentID() uuid.UUID {
	return c.departmentID
}

// SetDepartmentID sets the responsible department.
func (c *Contract) SetDepartmentID(departmentID uuid.UUID) error {
	if departmentID == uuid.Nil {
		return core.NewValidationError(fieldDepartmentID, "must be a valid UUID")
	}

	c.departmentID = departmentID

	return nil
}

// FolderID returns the folder the contract is filed in.
func (c *Contract) FolderID() uuid.UUID {
	return c.folderID
}

// SetFolderID sets the folder the contract is filed in.
func (c *Contract) SetFolderID(folderID uuid.UUID) error {
	if folderID == uuid.Nil {
		return core.NewValidationError(fieldFolderID, "must be a valid UUID")
	}

	c.folderID = folderID

	return nil
}

// PartyIDs returns a copy of the ids of the contracting parties.
func (c *Contract) PartyIDs() []uuid.UUID {
	return slices.Clone(c.partyIDs)
}

// SetPartyIDs sets the contracting parties. At least one party is required and none may be nil.
func (c *Contract) SetPartyIDs(partyIDs []uuid.UUID) error {
	if len(partyIDs) == 0 {
		return core.NewValidationError(fieldPartyIDs, "must contain at least one party")
	}

	if slices.Contains(partyIDs, uuid.Nil) {
		return core.NewValidationError(fieldPartyIDs, "must only contain valid UUIDs")
	}

	c.partyIDs = slices.Clone(partyIDs)

	return nil
}

// StartDate returns the first day the contract is in force.
func (c *Contract) StartDate() time.Time {
	return c.startDate
}

// SetStartDate sets the start date. It is required and must not be after the end date.
func (c *Contract) SetStartDate(startDate time.Time) error {
	if startDate.IsZero() {
		return core.NewValidationError(fieldStartDate, "is required")
	}

	startDate = normalizeDate(startDate)

	if !c.endDate.IsZero() && c.endDate.Before(startDate) {
		return core.NewValidationError(fieldStartDate, "must not be after the end date")
	}

	c.startDate = startDate

	return nil
}

// EndDate returns the last day the contract is in force; zero means open-ended.
func (c *Contract) EndDate() time.Time {
	return c.endDate
}

// SetEndDate sets the end date. A zero value makes the contract open-ended.
func (c *Contract) SetEndDate(endDate time.Time) error {
	endDate = normalizeDate(endDate)

	if !endDate.IsZero() && endDate.Before(c.startDate) {
		return core.NewValidationError(fieldEndDate, "must not precede the start date")
	}

	c.endDate = endDate

	return nil
}

// Notes returns free-form notes.
func (c *Contract) Notes() string {
	return c.notes
}

// Slug returns the URL slug.
func (c *Contract) Slug() string {
	return c.slug
}

// IsAdditional reports whether the contract is an addendum to another contract.
func (c *Contract) IsAdditional() bool {
	return c.isAdditional
}

// EmailSend reports whether the parties are notified by e-mail.
func (c *Contract) EmailSend() bool {
	return c.emailSend
}

// LGPD reports whether the contract contains personal data subject to data protection law.
func (c *Contract) LGPD() bool {
	return c.lgpd
}

// AutomaticRenewal reports whether the contract renews itself at its end date.
func (c *Contract) AutomaticRenewal() bool {
	return c.automaticRenewal
}

// IsInForce reports whether day lies between the start and end dates.
func (c *Contract) IsInForce(day time.Time) bool {
	day = normalizeDate(day)

	if day.Before(c.startDate) {
		return false
	}

	return c.endDate.IsZero() || !day.After(c.endDate)
}

// ContractStatus returns the commercial status.
func (c *Contract) ContractStatus() Status {
	return c.status
}

// SetContractStatus sets the commercial status.
func (c *Contract) SetContractStatus(status Status) error {
	if !status.IsValid() {
		return core.NewValidationError(fieldContractStatus, fmt.Sprintf("unknown contract status %q", status))
	}

	c.status = status

	return nil
}

// ContractType returns the contract type.
func (c *Contract) ContractType() Type {
	return c.contractType
}

// SetContractType sets the contract type.
func (c *Contract) SetContractType(contractType Type) error {
	if !contractType.IsValid() {
		return core.NewValidationError(fieldContractType, fmt.Sprintf("unknown contract type %q", contractType))
	}

	c.contractType = contractType

	return nil
}

// UpdateAttribute changes the named Document or Contract attribute on behalf of actorID
// and records a document_updated event, following the rules of core.Document.UpdateAttribute.
func (c *Contract) UpdateAttribute(name string, value any, actorID uuid.UUID) error {
	change, err := attributes.Apply(c, name, value, core.ActorGuard(actorID))
	if err != nil {
		return err
	}

	c.RecordAttributeChange(change, actorID)

	return nil
}

func (c *Contract) String() string {
	return fmt.Sprintf("Contract(id=%s, document_type=%s)", c.ID(), c.DocumentType())
}

func (c *Contract) setNotes(notes string)          { c.notes = notes }
func (c *Contract) setSlug(slug string)            { c.slug = slug }
func (c *Contract) setIsAdditional(value bool)     { c.isAdditional = value }
func (c *Contract) setEmailSend(value bool)        { c.emailSend = value }
func (c *Contract) setLGPD(value bool)             { c.lgpd = value }
func (c *Contract) setAutomaticRenewal(value bool) { c.automaticRenewal = value }

func setter[T any](set func(*Contract, T)) func(*Contract, T) error {
	return func(c *Contract, value T) error {
		set(c, value)
		return nil
	}
}

func errNotAContract(documentType core.DocumentType) error {
	return core.NewValidationError(
		fieldDocumentType,
		fmt.Sprintf("invalid document type %q, expected %q", documentType, core.DocumentTypeContract),
	)
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return normalizeDate(a).Equal(normalizeDate(b))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(dateLayout)
}

func formatAmount(amount int64) string {
	return strconv.FormatInt(amount, 10)
}

func formatIDs(ids []uuid.UUID) string {
	rendered := make([]string, 0, len(ids))
	for _, id := range ids {
		rendered = append(rendered, id.String())
	}

	return strings.Join(rendered, ",")
}
