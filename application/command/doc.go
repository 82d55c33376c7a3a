// Package command groups the document and tenant use cases, one package per command.
//
// Every package has the same shape: command.go holds the Command DTO and BuildCommand,
// command_handler.go holds the CommandHandler that loads or creates the aggregate, persists it
// through a repository and hands it to the optional publisher configured via application.Option.
package command
