// Package clients provides ready-made execution transports. The EVM
// transport dispatches real value transfers over a JSON-RPC endpoint;
// the static transport is an offline stand-in with the same shape.
package clients

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/hot-labs/smartpay-go/types"
)

// EVMTransport submits transactions through a JSON-RPC endpoint. It
// exposes the TransactionSender and Requester capabilities plus
// explorer and chain hints for the execution engine.
type EVMTransport struct {
	client   *rpc.Client
	chainID  int64
	explorer string
}

// EVMOption configures an EVMTransport.
type EVMOption func(*EVMTransport)

// WithChainID sets the chain id hint used for explorer resolution.
func WithChainID(chainID int64) EVMOption {
	return func(t *EVMTransport) { t.chainID = chainID }
}

// WithExplorer sets the block-explorer URL template.
func WithExplorer(explorer string) EVMOption {
	return func(t *EVMTransport) { t.explorer = explorer }
}

// NewEVMTransport dials a JSON-RPC endpoint. The endpoint must accept
// eth_sendTransaction for the wallet's account (a node with an
// unlocked account or a wallet-backed RPC bridge).
func NewEVMTransport(ctx context.Context, rpcURL string, opts ...EVMOption) (*EVMTransport, error) {
	if rpcURL == "" {
		return nil, errors.New("rpc endpoint is required")
	}

	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial rpc endpoint")
	}

	transport := &EVMTransport{
		client:   client,
		chainID:  1,
		explorer: "https://etherscan.io/tx/",
	}
	for _, opt := range opts {
		opt(transport)
	}
	return transport, nil
}

// SendTransaction submits a raw value transfer and returns the
// transaction hash reported by the node.
func (t *EVMTransport) SendTransaction(ctx context.Context, tx *types.TransactionRequest) (interface{}, error) {
	var hash string
	err := t.client.CallContext(ctx, &hash, "eth_sendTransaction", map[string]string{
		"from":  tx.From,
		"to":    tx.To,
		"value": tx.Value,
	})
	if err != nil {
		return nil, errors.Wrap(err, "eth_sendTransaction failed")
	}
	return hash, nil
}

// Request forwards a generic JSON-RPC call.
func (t *EVMTransport) Request(ctx context.Context, method string, params interface{}) (interface{}, error) {
	args, ok := params.([]interface{})
	if !ok && params != nil {
		args = []interface{}{params}
	}

	var result interface{}
	if err := t.client.CallContext(ctx, &result, method, args...); err != nil {
		return nil, errors.Wrapf(err, "%s failed", method)
	}
	return result, nil
}

// ExplorerURL implements types.ExplorerHinter.
func (t *EVMTransport) ExplorerURL() string {
	return t.explorer
}

// ChainID implements types.ChainHinter.
func (t *EVMTransport) ChainID() int64 {
	return t.chainID
}

// Close releases the underlying RPC connection.
func (t *EVMTransport) Close() {
	t.client.Close()
}
