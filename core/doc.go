// Package core contains the domain layer for document management:
// entities with identity and timestamps, the domain events they record,
// and the aggregates Document and Tenant.
//
// Every aggregate embeds an Entity, which owns the identity, the creation and
// modification timestamps and an append-only buffer of DomainEvent values.
// Mutations record events into that buffer; an external publisher drains the
// buffer and clears it after a successful publish.
//
// Aggregates expose a generic UpdateAttribute operation backed by an explicit
// AttributeTable: a per-aggregate dispatch table of typed getters and
// validated setters. It gives one code path for "update any named field"
// without runtime reflection.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
