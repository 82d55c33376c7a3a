// Package application holds what the command handlers share: the repository and validator
// abstractions they depend on, the default validators, and the handler support that
// publishes recorded events and instruments each command.
//
// The use cases themselves live in the packages under application/command.
package application
