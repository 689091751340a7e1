// Package smartpay quotes and executes cross-asset payment routes for
// a checkout: it proposes candidate paths from a payer's wallet
// holdings, ranks them under competing optimization strategies, and
// dispatches the chosen route through a pluggable execution transport,
// degrading to a deterministic simulation when no live transport is
// available.
package smartpay

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hot-labs/smartpay-go/execution"
	"github.com/hot-labs/smartpay-go/logger"
	"github.com/hot-labs/smartpay-go/metrics"
	"github.com/hot-labs/smartpay-go/quoting"
	"github.com/hot-labs/smartpay-go/types"
	"github.com/hot-labs/smartpay-go/validation"
)

// DefaultStrategy is used when a caller does not name one.
const DefaultStrategy = types.StrategyBalanced

// SmartPay is the SDK facade wiring the quoting engine, the validation
// gate, and the execution engine. Construct it with New; there is no
// package-level instance.
type SmartPay struct {
	quoter   *quoting.Engine
	executor *execution.Engine
	gate     validation.Gate
	logger   logger.Logger
	metrics  metrics.Recorder
	validate *validator.Validate
	timeout  time.Duration
}

// New builds a SmartPay instance. Defaults: silent logger, noop
// metrics, local validation gate, 30 second execution timeout.
func New(opts ...Option) *SmartPay {
	s := &SmartPay{
		gate:    validation.NewLocalGate(),
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validate = validator.New()
	s.quoter = quoting.NewEngine(s.logger, s.metrics)
	s.executor = execution.NewEngine(s.logger, s.metrics)
	return s
}

// Quote ranks payment routes for a checkout against a wallet under all
// strategies and selects a globally best route. Malformed inputs fail
// hard here; a wallet whose balances produce no candidate yields empty
// strategy buckets and a nil Selected, which is not an error.
func (s *SmartPay) Quote(ctx context.Context, checkout *types.Checkout, wallet *types.Wallet, opts quoting.QuoteOptions) (*types.Quote, error) {
	if err := s.validateQuoteInput(checkout, wallet); err != nil {
		return nil, err
	}
	if opts.Strategy == "" {
		opts.Strategy = DefaultStrategy
	}
	return s.quoter.Quote(ctx, checkout, wallet, opts), nil
}

// QuoteByStrategy returns only the ranked routes for one strategy.
func (s *SmartPay) QuoteByStrategy(ctx context.Context, checkout *types.Checkout, wallet *types.Wallet, strategy types.Strategy) ([]types.RankedRoute, error) {
	quote, err := s.Quote(ctx, checkout, wallet, quoting.QuoteOptions{Strategy: strategy})
	if err != nil {
		return nil, err
	}
	return quote.ByStrategy[strategy], nil
}

// Execute runs the validation gate over the selected route and, on a
// pass, delegates to the execution engine. Gate rejections and every
// dispatch failure come back as Ok:false results; the returned error
// is reserved for the gate being unreachable.
func (s *SmartPay) Execute(ctx context.Context, route *types.RankedRoute, opts execution.Options) (*types.ExecutionResult, error) {
	request := &types.ValidationRequest{}
	if route != nil {
		request.ID = route.ID
		request.AmountUSD = route.SourceAmount
		request.SettlementToken = route.SettlementSymbol
		request.AcceptedPaymentMethods = []string{route.SourceSymbol}
	}
	if opts.Wallet != nil {
		request.WalletAddress = opts.Wallet.Address
	}

	verdict, err := s.gate.ValidateCheckoutPayload(ctx, request)
	if err != nil {
		return nil, &types.SmartPayError{
			Code:    types.ErrValidationFailed,
			Message: fmt.Sprintf("validation gate unreachable: %v", err),
		}
	}
	if verdict == nil || !verdict.Ok {
		reason := "Validation did not pass."
		if verdict != nil && verdict.Message != "" {
			reason = verdict.Message
		}
		return &types.ExecutionResult{
			Ok:            false,
			Status:        types.StatusValidationFailed,
			FailureReason: reason,
		}, nil
	}

	execCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.executor.Execute(execCtx, route, opts), nil
}

func (s *SmartPay) validateQuoteInput(checkout *types.Checkout, wallet *types.Wallet) error {
	if checkout == nil {
		return &types.SmartPayError{
			Code:    types.ErrInvalidCheckout,
			Message: `"checkout" is required`,
		}
	}
	if wallet == nil {
		return &types.SmartPayError{
			Code:    types.ErrInvalidWallet,
			Message: `"wallet" is required`,
		}
	}
	if err := s.validate.Struct(checkout); err != nil {
		return &types.SmartPayError{
			Code:    types.ErrInvalidCheckout,
			Message: fmt.Sprintf("checkout validation failed: %v", err),
		}
	}
	if err := s.validate.Struct(wallet); err != nil {
		return &types.SmartPayError{
			Code:    types.ErrInvalidWallet,
			Message: fmt.Sprintf("wallet validation failed: %v", err),
		}
	}
	return nil
}

// Version information.
const (
	Version = "0.1.0"
)
