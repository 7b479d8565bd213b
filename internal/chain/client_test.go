package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcServer(t *testing.T, result string, rpcErr *RPCError) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "eth_getTransactionReceipt", req.Method)

		w.Header().Set("Content-Type", "application/json")
		if rpcErr != nil {
			errJSON, _ := json.Marshal(rpcErr)
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":%s}`, req.ID, errJSON)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}))
}

func TestTransactionStatus_Confirmed(t *testing.T) {
	srv := rpcServer(t, `{"transactionHash":"0xabc","status":"0x1","blockNumber":"0x10"}`, nil)
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	status, err := c.TransactionStatus(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, ReceiptConfirmed, status)
}

func TestTransactionStatus_Reverted(t *testing.T) {
	srv := rpcServer(t, `{"transactionHash":"0xabc","status":"0x0","blockNumber":"0x10"}`, nil)
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	status, err := c.TransactionStatus(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, ReceiptReverted, status)
}

func TestTransactionStatus_NullReceiptMeansPending(t *testing.T) {
	srv := rpcServer(t, `null`, nil)
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	status, err := c.TransactionStatus(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, ReceiptPending, status)
}

func TestTransactionStatus_RPCError(t *testing.T) {
	srv := rpcServer(t, "", &RPCError{Code: -32000, Message: "header not found"})
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	_, err := c.TransactionStatus(context.Background(), "0xabc")
	require.Error(t, err)

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32000, rpcErr.Code)
}

func TestTransactionStatus_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	_, err := c.TransactionStatus(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_RequestIDsIncrease(t *testing.T) {
	var lastID atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Greater(t, int64(req.ID), lastID.Load())
		lastID.Store(int64(req.ID))
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":null}`, req.ID)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, slog.Default())
	for range 3 {
		_, err := c.TransactionStatus(context.Background(), "0xabc")
		require.NoError(t, err)
	}
}
