package types

import "context"

// Transport is a caller-supplied mechanism capable of submitting a real
// transaction for a route. A transport is any value exposing one or
// more of the capability interfaces below; the execution engine probes
// them in a fixed precedence order:
//
//	RouteExecutor > Executor > TransactionSender > Requester
//
// The probe order is an observable contract, not an implementation
// detail: a transport exposing both ExecuteRoute and Request will only
// ever see ExecuteRoute called.
type Transport interface{}

// ExecutionCall carries the route, wallet, and normalized recipient for
// a transport dispatch.
type ExecutionCall struct {
	Route  *RankedRoute
	Wallet *Wallet
	To     string
}

// TransactionRequest is a raw value-transfer request. Value is the
// fixed-point hex encoding of the source amount.
type TransactionRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value"`
}

// RouteExecutor is a route-aware transport. The response may be a bare
// transaction hash, a TxHashCarrier, or a complete *ExecutionResult
// which is passed through untouched.
type RouteExecutor interface {
	ExecuteRoute(ctx context.Context, call *ExecutionCall) (interface{}, error)
}

// Executor is a generic execute capability.
type Executor interface {
	Execute(ctx context.Context, call *ExecutionCall) (interface{}, error)
}

// TransactionSender submits a raw value transfer.
type TransactionSender interface {
	SendTransaction(ctx context.Context, tx *TransactionRequest) (interface{}, error)
}

// Requester is a generic JSON-RPC style capability.
type Requester interface {
	Request(ctx context.Context, method string, params interface{}) (interface{}, error)
}

// TxHashCarrier is a transport response that exposes its transaction
// hash directly.
type TxHashCarrier interface {
	TxHash() string
}

// TransportResponse is the struct shape of a hash-bearing response.
// Either field is accepted; Hash wins when both are set.
type TransportResponse struct {
	Hash            string `json:"hash,omitempty"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

// ExplorerHinter lets a transport advertise the block-explorer URL
// template for its chain.
type ExplorerHinter interface {
	ExplorerURL() string
}

// ChainHinter lets a transport advertise the chain id it dispatches to.
type ChainHinter interface {
	ChainID() int64
}

// TransportResolver picks a transport for a route, taking precedence
// over every other resolution source when it returns non-nil.
type TransportResolver func(route *RankedRoute, wallet *Wallet) Transport
