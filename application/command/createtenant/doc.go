// Package createtenant implements the "Create Tenant" use case.
//
// Tenant names are unique; the default validator, application.TenantService, checks this
// against the repository before the tenant is saved.
package createtenant
