package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_NextPrev(t *testing.T) {
	assert.Equal(t, StatusPreparing, StatusPending.Next())
	assert.Equal(t, StatusReady, StatusPreparing.Next())
	assert.Equal(t, StatusDelivered, StatusReady.Next())
	assert.Equal(t, StatusArchived, StatusDelivered.Next())
	assert.Equal(t, StatusArchived, StatusArchived.Next())

	assert.Equal(t, StatusPending, StatusPending.Prev())
	assert.Equal(t, StatusPending, StatusPreparing.Prev())
	assert.Equal(t, StatusDelivered, StatusArchived.Prev())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range StatusOrder {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("cooked").Valid())
	assert.False(t, Status("").Valid())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPreparing, StatusPending, true},
		{StatusReady, StatusReady, true},
		{StatusPending, StatusArchived, true},
		{StatusDelivered, StatusArchived, true},
		{StatusArchived, StatusArchived, true},
		{StatusPending, StatusReady, false},
		{StatusDelivered, StatusPreparing, false},
		{StatusArchived, StatusDelivered, false},
		{StatusArchived, StatusPending, false},
		{Status("cooked"), StatusPending, false},
		{StatusPending, Status("cooked"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
