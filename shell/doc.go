// Package shell connects the core aggregates to an event store.
//
// It maps domain events to storable events and back, carries event metadata,
// and publishes the events an aggregate recorded with retries on transient append failures.
package shell
