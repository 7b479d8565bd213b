// Package chain provides a minimal EVM JSON-RPC client and the receipt
// watcher that drives approvals through on-chain confirmation.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// ReceiptStatus is the settlement outcome of a transaction.
type ReceiptStatus int

const (
	// ReceiptPending means the transaction has not been mined yet.
	ReceiptPending ReceiptStatus = iota
	// ReceiptConfirmed means the transaction executed successfully.
	ReceiptConfirmed
	// ReceiptReverted means the transaction was mined but reverted.
	ReceiptReverted
)

// ReceiptClient checks the settlement status of a transaction hash.
type ReceiptClient interface {
	TransactionStatus(ctx context.Context, txHash string) (ReceiptStatus, error)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type receipt struct {
	TransactionHash string `json:"transactionHash"`
	Status          string `json:"status"`
	BlockNumber     string `json:"blockNumber"`
}

// Client talks to an EVM JSON-RPC endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	rpcURL     string
	requestID  atomic.Int64
	logger     *slog.Logger
}

func NewClient(rpcURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rpcURL:     rpcURL,
		logger:     logger.With("component", "chain"),
	}
}

// TransactionStatus resolves a tx hash via eth_getTransactionReceipt. A null
// result means the transaction is still in the mempool.
func (c *Client) TransactionStatus(ctx context.Context, txHash string) (ReceiptStatus, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", []any{txHash})
	if err != nil {
		return ReceiptPending, err
	}

	if len(result) == 0 || string(result) == "null" {
		return ReceiptPending, nil
	}

	var r receipt
	if err := json.Unmarshal(result, &r); err != nil {
		return ReceiptPending, fmt.Errorf("unmarshal receipt: %w", err)
	}

	// EVM receipt status is "0x1" for success, "0x0" for revert.
	if r.Status == "0x1" {
		return ReceiptConfirmed, nil
	}
	return ReceiptReverted, nil
}

func (c *Client) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	id := int(c.requestID.Add(1))
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}
