// Package updatedocumentattribute implements the "Update Document Attribute" use case.
//
// The handler loads the document, changes one attribute through the generic attribute table
// and persists the document only if the value actually changed.
package updatedocumentattribute
