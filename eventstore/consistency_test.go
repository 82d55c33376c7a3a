package eventstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/document-aggregates-go/eventstore"
)

func Test_GetConsistencyLevel(t *testing.T) {
	testCases := []struct {
		name     string
		ctx      context.Context
		expected eventstore.ConsistencyLevel
	}{
		{
			name:     "defaults to strong",
			ctx:      context.Background(),
			expected: eventstore.StrongConsistency,
		},
		{
			name:     "eventual",
			ctx:      eventstore.WithEventualConsistency(context.Background()),
			expected: eventstore.EventualConsistency,
		},
		{
			name:     "strong overrides eventual",
			ctx:      eventstore.WithStrongConsistency(eventstore.WithEventualConsistency(context.Background())),
			expected: eventstore.StrongConsistency,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, eventstore.GetConsistencyLevel(tc.ctx))
		})
	}
}
