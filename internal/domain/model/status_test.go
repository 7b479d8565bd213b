package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatus_Valid(t *testing.T) {
	for _, s := range []ApplicationStatus{StatusPending, StatusOnchainPending, StatusApproved, StatusRejected} {
		assert.True(t, s.Valid(), "status %s", s)
	}
	assert.False(t, ApplicationStatus("CANCELLED").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestApplicationStatus_Open(t *testing.T) {
	assert.True(t, StatusPending.Open())
	assert.True(t, StatusOnchainPending.Open())
	assert.False(t, StatusApproved.Open())
	assert.False(t, StatusRejected.Open())
}

func TestApplicationStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		allowed  bool
	}{
		{StatusPending, StatusOnchainPending, true},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusOnchainPending, StatusApproved, true},
		{StatusOnchainPending, StatusPending, true},
		{StatusOnchainPending, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusApproved, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestApplicationStatus_TerminalStatesCannotMove(t *testing.T) {
	all := []ApplicationStatus{StatusPending, StatusOnchainPending, StatusApproved, StatusRejected}
	for _, terminal := range []ApplicationStatus{StatusApproved, StatusRejected} {
		assert.True(t, terminal.Terminal())
		for _, next := range all {
			assert.False(t, terminal.CanTransition(next), "%s -> %s", terminal, next)
		}
	}
}
