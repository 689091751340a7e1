// Package execution drives a selected route to a pass/fail settlement
// outcome: it resolves an execution transport, dispatches through its
// capability set, and degrades to a deterministic simulation when no
// live transport is available. Every failure path is a result value;
// nothing escapes the engine as an error.
package execution

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand/v2"
	"strings"
	"time"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/internal/encoding"
	"github.com/hot-labs/smartpay-go/logger"
	"github.com/hot-labs/smartpay-go/metrics"
	"github.com/hot-labs/smartpay-go/types"
)

const (
	// DefaultRecipient receives value transfers when neither the
	// caller nor the route names a target.
	DefaultRecipient = "0x3A1d0De8D8a73a9fF5f3c6f4A6f0f5D2E8d3C45F1"

	// DefaultSimulationFailureRate is the simulated dispatch failure
	// probability.
	DefaultSimulationFailureRate = 0.08

	defaultDelay       = 900 * time.Millisecond
	baseLatency        = 650 * time.Millisecond
	latencyJitterRange = 350 * time.Millisecond
)

// Options configures one execution attempt. The zero value simulates
// with defaults.
type Options struct {
	Wallet *types.Wallet

	// Delay is the simulated settlement delay. Zero means the default
	// 900ms.
	Delay time.Duration

	// Latency overrides the artificial pre-dispatch round-trip wait.
	// Zero means the default 650-1000ms window; tests set it low.
	Latency time.Duration

	// SimulationFailureRate overrides the simulated failure
	// probability. Nil means the 8% default.
	SimulationFailureRate *float64

	// ForceExecution routes an executable candidate through a resolved
	// transport instead of the simulation fallback.
	ForceExecution bool

	// ToAddress overrides the execution recipient.
	ToAddress string

	// Transports is a chain-keyed transport map checked after the
	// resolver callback.
	Transports map[string]types.Transport

	// TransportResolver takes precedence over every other resolution
	// source.
	TransportResolver types.TransportResolver

	// Provider is a bare transport checked before the wallet's own.
	Provider types.Transport
}

// Engine executes routes. Calls are independent: there is no
// deduplication, locking, or retry inside the engine.
type Engine struct {
	logger  logger.Logger
	metrics metrics.Recorder
}

// NewEngine builds an execution engine. Nil collaborators default to
// noop implementations.
func NewEngine(log logger.Logger, recorder metrics.Recorder) *Engine {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Engine{logger: log, metrics: recorder}
}

// Execute drives one route to a terminal result. The context is
// honored during internal waits and transport calls; cancellation
// surfaces as a failed result, never as an error or a hang.
func (e *Engine) Execute(ctx context.Context, route *types.RankedRoute, opts Options) *types.ExecutionResult {
	start := time.Now()

	if route == nil {
		return &types.ExecutionResult{Ok: false, FailureReason: "No route selected."}
	}

	delay := opts.Delay
	if delay == 0 {
		delay = defaultDelay
	}
	failureRate := DefaultSimulationFailureRate
	if opts.SimulationFailureRate != nil {
		failureRate = *opts.SimulationFailureRate
	}

	transport := resolveTransport(route, &opts)
	simulate := !route.Executable || !(opts.ForceExecution && transport != nil)
	explorer := resolveExplorer(route, transport, opts.Wallet)

	latency := opts.Latency
	if latency == 0 {
		latency = baseLatency + time.Duration(mrand.Int64N(int64(latencyJitterRange)))
	}
	if err := sleep(ctx, latency); err != nil {
		return failResult(route, "", err.Error())
	}

	var result *types.ExecutionResult
	if simulate {
		result = e.simulate(ctx, route, delay, failureRate, explorer)
	} else {
		result = e.dispatch(ctx, route, transport, &opts, delay, explorer)
	}

	e.metrics.IncCounter("execute", map[string]string{"network": route.SourceChain})
	e.metrics.ObserveLatency("execute", time.Since(start), map[string]string{"network": route.SourceChain})
	e.logger.Info("route execution finished", map[string]any{
		"route":     route.ID,
		"ok":        result.Ok,
		"simulated": simulate,
	})

	return result
}

// simulate manufactures a plausible pass/fail outcome without on-chain
// effect.
func (e *Engine) simulate(ctx context.Context, route *types.RankedRoute, delay time.Duration, failureRate float64, explorer string) *types.ExecutionResult {
	if err := sleep(ctx, delay); err != nil {
		return failResult(route, "", err.Error())
	}

	passed := mrand.Float64() >= failureRate
	if !passed {
		return failResult(route, "", "Route simulation failed to finalize.")
	}

	txHash := randomTxHash()
	return &types.ExecutionResult{
		Ok:               true,
		TxHash:           txHash,
		ExplorerHint:     explorer + txHash,
		RouteID:          route.ID,
		SourceSymbol:     route.SourceSymbol,
		SettlementSymbol: route.SettlementSymbol,
		Strategy:         route.Strategy,
		UsedNetwork:      usedNetwork(route),
	}
}

// dispatch probes the transport's capability set in precedence order
// and normalizes whatever comes back.
func (e *Engine) dispatch(ctx context.Context, route *types.RankedRoute, transport types.Transport, opts *Options, delay time.Duration, explorer string) *types.ExecutionResult {
	recipient := opts.ToAddress
	if recipient == "" {
		recipient = route.To
	}
	if recipient == "" {
		recipient = DefaultRecipient
	}
	recipient = catalog.NormalizeAddress(recipient)
	if !strings.HasPrefix(recipient, "0x") {
		return &types.ExecutionResult{
			Ok:               false,
			Status:           types.StatusInvalidRecipient,
			FailureReason:    "Execution recipient address is required.",
			RouteID:          route.ID,
			SourceSymbol:     route.SourceSymbol,
			SettlementSymbol: route.SettlementSymbol,
			Strategy:         route.Strategy,
		}
	}

	call := &types.ExecutionCall{Route: route, Wallet: opts.Wallet, To: recipient}

	result := e.tryCapabilities(ctx, route, transport, call, delay)
	if result == nil {
		return failResult(route, "", "Transport does not expose a compatible execution method.")
	}
	if !result.Ok {
		return result
	}

	if result.TxHash != "" {
		result.ExplorerHint = explorer + result.TxHash
	}
	result.UsedNetwork = usedNetwork(route)
	return result
}

func (e *Engine) tryCapabilities(ctx context.Context, route *types.RankedRoute, transport types.Transport, call *types.ExecutionCall, delay time.Duration) *types.ExecutionResult {
	if executor, ok := transport.(types.RouteExecutor); ok {
		response, err := executor.ExecuteRoute(ctx, call)
		if err != nil {
			return transportError(route, err)
		}
		if ready, isResult := response.(*types.ExecutionResult); isResult && ready != nil {
			return ready
		}
		if hash := extractTxHash(response); hash != "" {
			return okResult(route, hash)
		}
		return failResult(route, "", "Custom transport returned invalid execution payload.")
	}

	if executor, ok := transport.(types.Executor); ok {
		response, err := executor.Execute(ctx, call)
		if err != nil {
			return transportError(route, err)
		}
		if hash := extractTxHash(response); hash != "" {
			return okResult(route, hash)
		}
		return failResult(route, "", "Custom transport execute() did not return a transaction hash.")
	}

	if sender, ok := transport.(types.TransactionSender); ok {
		from := ""
		if call.Wallet != nil {
			from = call.Wallet.Address
		}
		response, err := sender.SendTransaction(ctx, &types.TransactionRequest{
			From:  from,
			To:    call.To,
			Value: encoding.ToHex(route.SourceAmount, 18),
		})
		if err != nil {
			return transportError(route, err)
		}
		if hash := extractTxHash(response); hash != "" {
			if err := sleep(ctx, delay*6/10); err != nil {
				return failResult(route, "", err.Error())
			}
			return okResult(route, hash)
		}
		// No hash from the raw sender; fall through to the generic
		// request capability.
	}

	if requester, ok := transport.(types.Requester); ok {
		from := ""
		if call.Wallet != nil {
			from = call.Wallet.Address
		}
		response, err := requester.Request(ctx, "eth_sendTransaction", []interface{}{
			map[string]string{
				"from":  from,
				"to":    call.To,
				"value": encoding.ToHex(route.SourceAmount, 18),
			},
		})
		if err != nil {
			return transportError(route, err)
		}
		if hash := extractTxHash(response); hash != "" {
			return okResult(route, hash)
		}
	}

	return nil
}

func okResult(route *types.RankedRoute, txHash string) *types.ExecutionResult {
	return &types.ExecutionResult{
		Ok:               true,
		TxHash:           txHash,
		RouteID:          route.ID,
		SourceSymbol:     route.SourceSymbol,
		SettlementSymbol: route.SettlementSymbol,
		Strategy:         route.Strategy,
	}
}

func failResult(route *types.RankedRoute, status, reason string) *types.ExecutionResult {
	return &types.ExecutionResult{
		Ok:               false,
		Status:           status,
		FailureReason:    reason,
		RouteID:          route.ID,
		SourceSymbol:     route.SourceSymbol,
		SettlementSymbol: route.SettlementSymbol,
		Strategy:         route.Strategy,
		UsedNetwork:      usedNetwork(route),
	}
}

func transportError(route *types.RankedRoute, err error) *types.ExecutionResult {
	reason := "Wallet provider denied transaction."
	if err != nil && err.Error() != "" {
		reason = err.Error()
	}
	return failResult(route, "", reason)
}

func usedNetwork(route *types.RankedRoute) string {
	settlement := route.SettlementChain
	if settlement == "" {
		settlement = route.SourceChain
	}
	return route.SourceChain + "→" + settlement
}

func randomTxHash() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
