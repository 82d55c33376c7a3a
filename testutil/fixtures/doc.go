// Package fixtures builds valid aggregates and ids for tests.
package fixtures
