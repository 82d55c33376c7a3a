// Package createdocument implements the "Create Document" use case.
//
// The handler builds a draft document, validates it, saves it and records document_created.
// The recorded event is published when a publisher is configured, otherwise it stays buffered
// in the returned document.
package createdocument
