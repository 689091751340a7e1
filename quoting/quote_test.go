package quoting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/types"
)

func fixedCheckout(amount float64) *types.Checkout {
	return &types.Checkout{
		ID:              "chk-1",
		PriceMode:       types.PriceModeFixed,
		FixedAmount:     amount,
		SettlementAsset: "USDC",
	}
}

func TestQuoteScenarioBalanced(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()

	quote := engine.Quote(context.Background(), fixedCheckout(79.50), wallet, QuoteOptions{
		Strategy: types.StrategyBalanced,
	})

	require.NotNil(t, quote)
	assert.Equal(t, 79.50, quote.InvoiceUSD)
	require.NotNil(t, quote.Selected)

	for _, strategy := range types.AllStrategies {
		assert.NotEmpty(t, quote.ByStrategy[strategy], "bucket %s should not be empty", strategy)
	}

	selected := quote.Selected
	assert.GreaterOrEqual(t, selected.FinalPayableUSD, selected.SettlementUSD)
	assert.GreaterOrEqual(t, selected.DisplayFeeUSD, 0.35)
}

func TestQuoteRanksAllStrategies(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()

	quote := engine.Quote(context.Background(), fixedCheckout(120), wallet, QuoteOptions{})

	for strategy, routes := range quote.ByStrategy {
		require.Len(t, routes, 3, "strategy %s", strategy)
		for i, route := range routes {
			assert.Equal(t, i+1, route.Rank)
			assert.Equal(t, strategy, route.Strategy)
			assert.Equal(t, i == 0, route.IsBest)
			assert.GreaterOrEqual(t, route.DisplayConfidence, 84)
			assert.LessOrEqual(t, route.DisplayConfidence, 99)
			assert.GreaterOrEqual(t, route.DisplayFeeUSD, 0.35)
			assert.NotZero(t, route.DisplayTotalUSD)
			assert.False(t, route.Meta.GeneratedAt.IsZero())
		}
	}
}

func TestQuoteVariablePriceUsesAmountInput(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()
	checkout := &types.Checkout{
		ID:              "chk-var",
		PriceMode:       types.PriceModeVariable,
		VariableMin:     25,
		VariableMax:     500,
		SettlementAsset: "USDC",
	}

	amount := 42.0
	quote := engine.Quote(context.Background(), checkout, wallet, QuoteOptions{AmountInput: &amount})
	assert.Equal(t, 42.0, quote.InvoiceUSD)

	quote = engine.Quote(context.Background(), checkout, wallet, QuoteOptions{})
	assert.Equal(t, 25.0, quote.InvoiceUSD)
}

func TestQuoteClampsTinyAmounts(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()

	quote := engine.Quote(context.Background(), fixedCheckout(0.01), wallet, QuoteOptions{})
	assert.Equal(t, 0.5, quote.InvoiceUSD)
}

func TestQuoteEmptyWalletIsNotAnError(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := &types.Wallet{
		Address:  "0x1111111111111111111111111111111111111111",
		Balances: []types.WalletBalance{},
	}

	quote := engine.Quote(context.Background(), fixedCheckout(79.50), wallet, QuoteOptions{})

	require.NotNil(t, quote)
	assert.Nil(t, quote.Selected)
	for _, strategy := range types.AllStrategies {
		assert.Empty(t, quote.ByStrategy[strategy])
	}
}

func TestQuoteRestrictedMethods(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()
	checkout := fixedCheckout(60)
	checkout.AcceptedPaymentMethods = []string{"ETH"}

	quote := engine.Quote(context.Background(), checkout, wallet, QuoteOptions{})

	require.NotNil(t, quote.Selected)
	for _, routes := range quote.ByStrategy {
		for _, route := range routes {
			assert.Equal(t, "ETH", route.SourceSymbol)
		}
	}
}

func TestQuoteSelectedMinimizesPayablePlusTimeCost(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()

	quote := engine.Quote(context.Background(), fixedCheckout(79.50), wallet, QuoteOptions{})
	require.NotNil(t, quote.Selected)

	selectedCost := quote.Selected.FinalPayableUSD + quote.Selected.ETAMinutes*timeValueOfMoney
	for _, routes := range quote.ByStrategy {
		for _, route := range routes {
			cost := route.FinalPayableUSD + route.ETAMinutes*timeValueOfMoney
			assert.LessOrEqual(t, selectedCost, cost)
		}
	}
}

func TestQuoteByStrategyReturnsSingleBucket(t *testing.T) {
	engine := NewEngine(nil, nil)
	wallet := catalog.NewDemoWallet()

	routes := engine.QuoteByStrategy(context.Background(), fixedCheckout(79.50), wallet, types.StrategyCheapest)

	require.Len(t, routes, 3)
	for _, route := range routes {
		assert.Equal(t, types.StrategyCheapest, route.Strategy)
	}
}

func TestBuildRouteContextDefaults(t *testing.T) {
	wallet := catalog.NewDemoWallet()

	rc := BuildRouteContext(&types.Checkout{ID: "chk"}, wallet, types.StrategyBalanced, 0)
	assert.Equal(t, 0.5, rc.InvoiceUSD)
	assert.Equal(t, "USDC", rc.SettlementToken.Symbol)
	assert.ElementsMatch(t, []string{"ETH", "USDC", "USDT"}, rc.AcceptedMethods)

	rc = BuildRouteContext(&types.Checkout{ID: "chk", SettlementAsset: "eth"}, wallet, types.StrategyBalanced, 10)
	assert.Equal(t, "ETH", rc.SettlementToken.Symbol)
	assert.Equal(t, 10.0, rc.InvoiceUSD)
}
