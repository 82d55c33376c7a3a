package eventstore_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

func Test_ValidateEventsTableName(t *testing.T) {
	testCases := []struct {
		name        string
		tableName   string
		expectedErr error
	}{
		{name: "default", tableName: "events"},
		{name: "underscores_and_digits", tableName: "_document_events_2025"},
		{name: "max_length", tableName: strings.Repeat("e", 63)},
		{name: "empty", tableName: "", expectedErr: eventstore.ErrEmptyEventsTableName},
		{name: "too_long", tableName: strings.Repeat("e", 64), expectedErr: eventstore.ErrInvalidEventsTableName},
		{name: "leading_digit", tableName: "1events", expectedErr: eventstore.ErrInvalidEventsTableName},
		{name: "uppercase", tableName: "Events", expectedErr: eventstore.ErrInvalidEventsTableName},
		{name: "schema_qualified", tableName: "public.events", expectedErr: eventstore.ErrInvalidEventsTableName},
		{name: "statement_injection", tableName: "events; DROP TABLE events", expectedErr: eventstore.ErrInvalidEventsTableName},
		{name: "quoted", tableName: `"events"`, expectedErr: eventstore.ErrInvalidEventsTableName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := eventstore.ValidateEventsTableName(tc.tableName)

			// assert
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
