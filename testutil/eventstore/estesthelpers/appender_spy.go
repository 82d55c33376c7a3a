package estesthelpers

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

// AppenderSpy records Append calls and fails the first FailTimes calls with Err.
type AppenderSpy struct {
	FailTimes int
	Err       error

	calls    int
	appended []eventstore.StorableEvent
	mu       sync.Mutex
}

// NewAppenderSpy creates an AppenderSpy that fails the first failTimes calls with err.
func NewAppenderSpy(failTimes int, err error) *AppenderSpy {
	return &AppenderSpy{FailTimes: failTimes, Err: err}
}

// Append implements eventstore.Appender.
func (s *AppenderSpy) Append(
	_ context.Context,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	if s.calls <= s.FailTimes {
		return s.Err
	}

	s.appended = append(s.appended, event)
	s.appended = append(s.appended, additionalEvents...)

	return nil
}

// Calls returns the number of Append calls.
func (s *AppenderSpy) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// Appended returns a copy of all successfully appended events.
func (s *AppenderSpy) Appended() []eventstore.StorableEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]eventstore.StorableEvent(nil), s.appended...)
}
