// Package deletedocument implements the "Delete Document" use case.
//
// Documents are soft-deleted: the handler moves the document to the deleted status,
// updates it in the repository and records document_deleted. Deleting twice is a no-op.
package deletedocument
