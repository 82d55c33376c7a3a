// Package deletetenant implements the "Delete Tenant" use case.
//
// Unlike documents, tenants are removed from their repository; the tenant_deleted event
// is the only trace left once it is published.
package deletetenant
