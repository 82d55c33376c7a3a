package core

import (
	"fmt"
	"slices"
)

// AttributeAccessor is one entry of an AttributeTable: a named field of aggregate A
// with its declared type, a getter and a validated setter.
//
// Entries are built with Attribute or AttributeFunc.
type AttributeAccessor[A any] interface {
	Name() string
	TypeName() string
	current(aggregate A) any
	render(aggregate A) string
	equalsCurrent(aggregate A, value any) bool
	accepts(value any) bool
	assign(aggregate A, value any) error
}

type attribute[A any, T any] struct {
	name   string
	get    func(A) T
	set    func(A, T) error
	equal  func(T, T) bool
	format func(T) string
}

// Attribute builds a table entry for a field of a comparable type T.
// set must validate before it assigns anything.
func Attribute[A any, T comparable](
	name string,
	get func(A) T,
	set func(A, T) error,
	format func(T) string,
) AttributeAccessor[A] {

	return AttributeFunc(name, get, set, func(a, b T) bool { return a == b }, format)
}

// AttributeFunc builds a table entry with a custom equality, e.g. for time.Time or pointer fields.
func AttributeFunc[A any, T any](
	name string,
	get func(A) T,
	set func(A, T) error,
	equal func(T, T) bool,
	format func(T) string,
) AttributeAccessor[A] {

	if format == nil {
		format = func(v T) string { return fmt.Sprint(v) }
	}

	return attribute[A, T]{name: name, get: get, set: set, equal: equal, format: format}
}

func (a attribute[A, T]) Name() string {
	return a.name
}

func (a attribute[A, T]) TypeName() string {
	var zero T
	return typeName(zero)
}

func (a attribute[A, T]) current(aggregate A) any {
	return a.get(aggregate)
}

func (a attribute[A, T]) render(aggregate A) string {
	return a.format(a.get(aggregate))
}

func (a attribute[A, T]) equalsCurrent(aggregate A, value any) bool {
	typed, ok := value.(T)
	if !ok {
		return false
	}

	return a.equal(a.get(aggregate), typed)
}

func (a attribute[A, T]) accepts(value any) bool {
	_, ok := value.(T)
	return ok
}

func (a attribute[A, T]) assign(aggregate A, value any) error {
	return a.set(aggregate, value.(T))
}

type liftedAttribute[O any, I any] struct {
	inner   AttributeAccessor[I]
	project func(O) I
}

func (l liftedAttribute[O, I]) Name() string {
	return l.inner.Name()
}

func (l liftedAttribute[O, I]) TypeName() string {
	return l.inner.TypeName()
}

func (l liftedAttribute[O, I]) current(aggregate O) any {
	return l.inner.current(l.project(aggregate))
}

func (l liftedAttribute[O, I]) render(aggregate O) string {
	return l.inner.render(l.project(aggregate))
}

func (l liftedAttribute[O, I]) equalsCurrent(aggregate O, value any) bool {
	return l.inner.equalsCurrent(l.project(aggregate), value)
}

func (l liftedAttribute[O, I]) accepts(value any) bool {
	return l.inner.accepts(value)
}

func (l liftedAttribute[O, I]) assign(aggregate O, value any) error {
	return l.inner.assign(l.project(aggregate), value)
}

// AttributeChange describes the outcome of AttributeTable.Apply.
// OldValue and NewValue are rendered as strings, ready for an event payload.
type AttributeChange struct {
	Attribute string
	OldValue  string
	NewValue  string
	Changed   bool
}

// AttributeTable maps attribute names of aggregate A to their accessors.
// It is built once per aggregate type and is safe for concurrent reads.
type AttributeTable[A any] struct {
	aggregateName string
	entries       map[string]AttributeAccessor[A]
}

// NewAttributeTable creates a table for the aggregate named aggregateName.
// Later entries replace earlier ones with the same name.
func NewAttributeTable[A any](aggregateName string, entries ...AttributeAccessor[A]) AttributeTable[A] {
	table := AttributeTable[A]{
		aggregateName: aggregateName,
		entries:       make(map[string]AttributeAccessor[A], len(entries)),
	}

	for _, entry := range entries {
		table.entries[entry.Name()] = entry
	}

	return table
}

// LiftAttributes re-targets all entries of table to an aggregate O that contains an I,
// so an embedding aggregate can reuse the entries of the embedded one.
func LiftAttributes[O any, I any](table AttributeTable[I], project func(O) I) []AttributeAccessor[O] {
	lifted := make([]AttributeAccessor[O], 0, len(table.entries))

	for _, name := range table.Names() {
		lifted = append(lifted, liftedAttribute[O, I]{inner: table.entries[name], project: project})
	}

	return lifted
}

// AggregateName returns the aggregate name used in error messages.
func (t AttributeTable[A]) AggregateName() string {
	return t.aggregateName
}

// With returns a copy of the table with entries added or replaced.
func (t AttributeTable[A]) With(entries ...AttributeAccessor[A]) AttributeTable[A] {
	all := make([]AttributeAccessor[A], 0, len(t.entries)+len(entries))
	for _, name := range t.Names() {
		all = append(all, t.entries[name])
	}

	all = append(all, entries...)

	return NewAttributeTable(t.aggregateName, all...)
}

// Names returns the sorted attribute names.
func (t AttributeTable[A]) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Has reports whether name is a known, settable attribute.
func (t AttributeTable[A]) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// TypeOf returns the declared type name of an attribute.
func (t AttributeTable[A]) TypeOf(name string) (string, error) {
	entry, err := t.lookup(name)
	if err != nil {
		return "", err
	}

	return entry.TypeName(), nil
}

// Value returns the current value of an attribute.
func (t AttributeTable[A]) Value(aggregate A, name string) (any, error) {
	entry, err := t.lookup(name)
	if err != nil {
		return nil, err
	}

	return entry.current(aggregate), nil
}

// Apply sets attribute name of aggregate to value through the attribute's validated setter.
//
// It fails with *UnknownAttributeError for names not in the table and with *AttributeUpdateError
// if value is not of the declared type or the setter rejects it. In both failure cases the
// aggregate is left untouched. A value equal to the current one is a no-op with Changed == false,
// and so is a value the setter normalizes to the current one, e.g. a padded title.
//
// Guards run after the type gate and before the setter; a failing guard is reported like a setter error.
// Apply neither refreshes timestamps nor records events; the aggregate does that when Changed is true.
func (t AttributeTable[A]) Apply(aggregate A, name string, value any, guards ...func() error) (AttributeChange, error) {
	entry, err := t.lookup(name)
	if err != nil {
		return AttributeChange{}, err
	}

	change := AttributeChange{Attribute: name}

	if entry.equalsCurrent(aggregate, value) {
		return change, nil
	}

	if !entry.accepts(value) {
		return AttributeChange{}, &AttributeUpdateError{
			Aggregate: t.aggregateName,
			Attribute: name,
			Expected:  entry.TypeName(),
			Received:  typeName(value),
		}
	}

	for _, guard := range guards {
		if guardErr := guard(); guardErr != nil {
			return AttributeChange{}, &AttributeUpdateError{
				Aggregate: t.aggregateName,
				Attribute: name,
				Cause:     guardErr,
			}
		}
	}

	change.OldValue = entry.render(aggregate)

	if setErr := entry.assign(aggregate, value); setErr != nil {
		return AttributeChange{}, &AttributeUpdateError{
			Aggregate: t.aggregateName,
			Attribute: name,
			Cause:     setErr,
		}
	}

	change.NewValue = entry.render(aggregate)
	change.Changed = change.NewValue != change.OldValue

	return change, nil
}

func (t AttributeTable[A]) lookup(name string) (AttributeAccessor[A], error) {
	entry, ok := t.entries[name]
	if !ok {
		return nil, &UnknownAttributeError{Aggregate: t.aggregateName, Attribute: name}
	}

	return entry, nil
}

func typeName(value any) string {
	if value == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%T", value)
}
