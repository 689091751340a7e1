package clients

import (
	"context"

	"github.com/hot-labs/smartpay-go/types"
)

// StaticTransport answers every route execution with a canned result.
// Useful for development environments and integration tests that need
// a resolvable transport without a node.
type StaticTransport struct {
	Hash     string
	Err      error
	Explorer string

	// Calls records the executed route ids in order.
	Calls []string
}

// ExecuteRoute implements types.RouteExecutor.
func (t *StaticTransport) ExecuteRoute(_ context.Context, call *types.ExecutionCall) (interface{}, error) {
	if call != nil && call.Route != nil {
		t.Calls = append(t.Calls, call.Route.ID)
	}
	if t.Err != nil {
		return nil, t.Err
	}
	return t.Hash, nil
}

// ExplorerURL implements types.ExplorerHinter.
func (t *StaticTransport) ExplorerURL() string {
	return t.Explorer
}
