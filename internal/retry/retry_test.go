package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/chain"
	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o operation" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
		reason    string
	}{
		{"nil", nil, false, "nil_error"},
		{"explicit transient", Transient(errors.New("x")), true, "explicit_transient"},
		{"explicit terminal", Terminal(errors.New("x")), false, "explicit_terminal"},
		{"wrapped explicit transient", fmt.Errorf("outer: %w", Transient(errors.New("x"))), true, "explicit_transient"},
		{"context canceled", context.Canceled, false, "context_canceled"},
		{"deadline exceeded", context.DeadlineExceeded, true, "context_deadline_exceeded"},
		{"net timeout", timeoutErr{}, true, "net_timeout"},
		{"rpc server range", &chain.RPCError{Code: -32005, Message: "limit exceeded"}, true, "jsonrpc_server_range"},
		{"rpc invalid params", &chain.RPCError{Code: -32602, Message: "invalid params"}, false, "jsonrpc_terminal"},
		{"wrapped rpc error", fmt.Errorf("call: %w", &chain.RPCError{Code: -32000, Message: "busy"}), true, "jsonrpc_server_range"},
		{"connection refused", errors.New("dial tcp: connection refused"), true, "message_transient"},
		{"service unavailable", errors.New("503 Service Unavailable"), true, "message_transient"},
		{"unauthorized", errors.New("401 Unauthorized"), false, "message_terminal"},
		{"not found", errors.New("resource not found"), false, "message_terminal"},
		{"unknown defaults terminal", errors.New("something odd"), false, "unknown_terminal_default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := Classify(tc.err)
			assert.Equal(t, tc.transient, d.IsTransient())
			assert.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestMarkersPreserveNil(t *testing.T) {
	assert.NoError(t, Transient(nil))
	assert.NoError(t, Terminal(nil))
}

func TestMarkersPreserveErrorChain(t *testing.T) {
	sentinel := errors.New("boom")
	assert.ErrorIs(t, Transient(sentinel), sentinel)
	assert.ErrorIs(t, Terminal(sentinel), sentinel)
	assert.Equal(t, "boom", Transient(sentinel).Error())
}
