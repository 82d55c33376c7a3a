// Package memory provides map-backed DocumentRepository and TenantRepository fakes for tests.
//
// Both keep insertion order, so All and the GetBy* lookups return entities in the order they were saved.
package memory
