// Package estesthelpers provides in-memory event store doubles for tests that do not need a database.
package estesthelpers
