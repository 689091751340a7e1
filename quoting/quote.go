// Package quoting orchestrates candidate generation and ranking across
// all supported strategies for one invoice, and selects a single
// globally best route.
package quoting

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/logger"
	"github.com/hot-labs/smartpay-go/metrics"
	"github.com/hot-labs/smartpay-go/routing"
	"github.com/hot-labs/smartpay-go/types"
)

// timeValueOfMoney converts ETA minutes into USD when scanning for
// the globally best route.
const timeValueOfMoney = 0.12

// Per-strategy fee discounts applied to the display fee.
var strategyDiscounts = map[types.Strategy]float64{
	types.StrategyFastest:  0.0,
	types.StrategyBalanced: 0.012,
	types.StrategyCheapest: 0.028,
}

var strategyLabels = map[types.Strategy]string{
	types.StrategyFastest:  "Fastest",
	types.StrategyCheapest: "Cheapest",
	types.StrategyBalanced: "Balanced",
}

// Engine is the quoting engine. It is stateless apart from its
// observability collaborators, so concurrent Quote calls never
// interfere.
type Engine struct {
	logger  logger.Logger
	metrics metrics.Recorder
}

// NewEngine builds a quoting engine. Nil collaborators default to noop
// implementations.
func NewEngine(log logger.Logger, recorder metrics.Recorder) *Engine {
	if log == nil {
		log = logger.NoopLogger{}
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Engine{logger: log, metrics: recorder}
}

// BuildRouteContext resolves the settlement token and accepted-method
// set once per request. A checkout without an accepted-method list
// falls back to the full supported set.
func BuildRouteContext(checkout *types.Checkout, wallet *types.Wallet, strategy types.Strategy, amountUSD float64) *routing.Context {
	cat := catalog.Resolve()

	accepted := catalog.SupportedMethods
	if checkout != nil && checkout.AcceptedPaymentMethods != nil {
		accepted = checkout.AcceptedPaymentMethods
	}

	settlementSymbol := "USDC"
	if checkout != nil && checkout.SettlementAsset != "" {
		settlementSymbol = strings.ToUpper(checkout.SettlementAsset)
	}

	base := amountUSD
	if base == 0 && checkout != nil {
		base = checkout.FixedAmount
		if base == 0 {
			base = checkout.VariableMin
		}
	}

	settlement, ok := cat.BySymbol[settlementSymbol]
	if !ok && len(cat.Tokens) > 0 {
		settlement = cat.Tokens[0]
	}

	return &routing.Context{
		InvoiceUSD:      math.Max(0.5, catalog.SanitizeAmount(base, 0.5)),
		SettlementToken: settlement,
		Wallet:          wallet,
		Catalog:         cat,
		AcceptedMethods: catalog.NormalizeTokenList(accepted),
		Strategy:        strategy,
	}
}

// QuoteOptions are the caller knobs for one quoting call.
type QuoteOptions struct {
	// AmountInput overrides the invoice amount for variable-price
	// checkouts. Nil or zero falls back to the checkout minimum.
	AmountInput *float64
	// Strategy is the caller's preferred strategy. All three are
	// ranked regardless so alternatives stay inspectable.
	Strategy types.Strategy
}

// Quote resolves the invoice amount, ranks candidates under every
// strategy, enriches display fields, and picks the globally best
// route. An empty wallet yields empty strategy buckets and a nil
// Selected; that is not an error.
func (e *Engine) Quote(ctx context.Context, checkout *types.Checkout, wallet *types.Wallet, opts QuoteOptions) *types.Quote {
	start := time.Now()

	if ctx.Err() != nil {
		return &types.Quote{ByStrategy: map[types.Strategy][]types.RankedRoute{}}
	}

	baseAmount := checkout.FixedAmount
	if checkout.PriceMode == types.PriceModeVariable {
		baseAmount = checkout.VariableMin
		if opts.AmountInput != nil && *opts.AmountInput != 0 {
			baseAmount = *opts.AmountInput
		}
	}

	upper := math.Max(999999, baseAmount)
	if baseAmount == 0 {
		upper = 1000000
	}
	normalized := catalog.EnsureWithinRange(baseAmount, 0.5, upper)

	common := BuildRouteContext(checkout, wallet, opts.Strategy, normalized)

	byStrategy := make(map[types.Strategy][]types.RankedRoute, len(types.AllStrategies))
	for _, strategy := range types.AllStrategies {
		rc := *common
		rc.Strategy = strategy
		candidates := routing.BuildCandidates(&rc)
		ranked := routing.Rank(candidates, strategy)
		for i := range ranked {
			enrichRoute(&ranked[i], checkout, strategy)
		}
		byStrategy[strategy] = ranked
	}

	union := make([]types.RankedRoute, 0,
		len(byStrategy[types.StrategyFastest])+len(byStrategy[types.StrategyCheapest])+len(byStrategy[types.StrategyBalanced]))
	union = append(union, byStrategy[types.StrategyFastest]...)
	union = append(union, byStrategy[types.StrategyCheapest]...)
	union = append(union, byStrategy[types.StrategyBalanced]...)

	selected := pickBestCandidate(union)

	e.metrics.IncCounter("quote", map[string]string{"network": wallet.Chain})
	e.metrics.ObserveLatency("quote", time.Since(start), map[string]string{"network": wallet.Chain})
	e.logger.Debug("quote generated", map[string]any{
		"checkout":   checkout.ID,
		"invoiceUsd": normalized,
		"routes":     len(union),
		"selected":   selected != nil,
	})

	return &types.Quote{
		InvoiceUSD: normalized,
		Selected:   selected,
		ByStrategy: byStrategy,
	}
}

// QuoteByStrategy returns only the ranked list for one strategy.
func (e *Engine) QuoteByStrategy(ctx context.Context, checkout *types.Checkout, wallet *types.Wallet, strategy types.Strategy) []types.RankedRoute {
	quote := e.Quote(ctx, checkout, wallet, QuoteOptions{Strategy: strategy})
	return quote.ByStrategy[strategy]
}

// pickBestCandidate minimizes payable-plus-time-cost over the union of
// every strategy bucket. Strict comparison keeps the earlier route on
// ties, so the scan is deterministic for a fixed bucket order.
func pickBestCandidate(routes []types.RankedRoute) *types.RankedRoute {
	var best *types.RankedRoute
	for i := range routes {
		route := &routes[i]
		if best == nil {
			best = route
			continue
		}
		routeCost := route.FinalPayableUSD + route.ETAMinutes*timeValueOfMoney
		bestCost := best.FinalPayableUSD + best.ETAMinutes*timeValueOfMoney
		if routeCost < bestCost {
			best = route
		}
	}
	if best == nil {
		return nil
	}
	selected := *best
	return &selected
}

// enrichRoute applies the display-oriented strategy discount, ETA
// compression, and confidence clamp.
func enrichRoute(route *types.RankedRoute, checkout *types.Checkout, strategy types.Strategy) {
	invoiceUSD := checkout.FixedAmount
	if invoiceUSD == 0 {
		invoiceUSD = checkout.VariableMin
	}
	if invoiceUSD == 0 {
		invoiceUSD = checkout.VariableMax
	}
	if invoiceUSD == 0 {
		invoiceUSD = 1
	}

	discountUSD := math.Max(0.12, invoiceUSD*strategyDiscounts[strategy])
	displayFee := math.Max(0.35, route.FeesTotalUSD-discountUSD)

	etaScale := 1.0
	if strategy == types.StrategyFastest {
		etaScale = 0.86
	}
	displayETASeconds := math.Max(30, route.ETAMinutes*60*etaScale)

	reliability := route.Reliability
	if reliability == 0 {
		reliability = 0.94
	}
	bonus := 0
	if strategy == types.StrategyCheapest {
		bonus = 2
	}
	confidence := int(math.Min(99, math.Max(84, math.Round(reliability*100)+float64(bonus))))

	route.Strategy = strategy
	route.DisplayFeeUSD = catalog.RoundMoney(displayFee)
	route.DisplayTotalUSD = catalog.RoundMoney(invoiceUSD + displayFee)
	route.DisplayETAMinutes = roundDisplayETA(displayETASeconds / 60)
	route.DisplayConfidence = confidence
	route.Hint = strategyLabels[strategy]

	if route.SettlementSymbol == "" {
		symbol := "USDC"
		if checkout.SettlementAsset != "" {
			symbol = strings.ToUpper(checkout.SettlementAsset)
		}
		route.SettlementSymbol = symbol
	}
	if route.SettlementChain == "" {
		route.SettlementChain = "ethereum"
	}
	route.Meta.Strategy = strategy
	route.Meta.GeneratedAt = time.Now().UTC()
}

func roundDisplayETA(minutes float64) float64 {
	parsed, _ := strconv.ParseFloat(strconv.FormatFloat(minutes, 'f', 2, 64), 64)
	return parsed
}
