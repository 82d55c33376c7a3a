// Package testdoubles provides spies for the logging and metrics interfaces
// accepted by the event store engines, the publisher and the use cases.
//
//   - LogHandlerSpy: a slog.Handler capturing records, for use with slog.New
//   - ContextualLoggerSpy: captures ...Context logging calls together with their context
//   - MetricsCollectorSpy: captures duration, counter and value metrics
package testdoubles
