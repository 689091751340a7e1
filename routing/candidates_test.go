package routing

import (
	"testing"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/types"
)

func demoContext(invoiceUSD float64, strategy types.Strategy) *Context {
	cat := catalog.Resolve()
	return &Context{
		InvoiceUSD:      invoiceUSD,
		SettlementToken: cat.BySymbol["USDC"],
		Wallet:          catalog.NewDemoWallet(),
		Catalog:         cat,
		AcceptedMethods: catalog.SupportedMethods,
		Strategy:        strategy,
	}
}

func TestBuildCandidatesProducesOnePerEligibleBalance(t *testing.T) {
	candidates := BuildCandidates(demoContext(79.5, types.StrategyBalanced))
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
}

func TestBuildCandidatesReliabilityBounds(t *testing.T) {
	for _, strategy := range types.AllStrategies {
		for _, invoice := range []float64{0.5, 79.5, 750, 250000} {
			for _, c := range BuildCandidates(demoContext(invoice, strategy)) {
				if c.Reliability < 0.9 || c.Reliability > 0.999 {
					t.Errorf("%s/%v: reliability %f out of [0.9, 0.999]", strategy, invoice, c.Reliability)
				}
				if c.FailureRate < 0 {
					t.Errorf("%s/%v: negative failure rate %f", strategy, invoice, c.FailureRate)
				}
				if c.FeesTotalUSD < 0 {
					t.Errorf("%s/%v: negative fee %f", strategy, invoice, c.FeesTotalUSD)
				}
			}
		}
	}
}

func TestBuildCandidatesSkipsZeroBalances(t *testing.T) {
	rc := demoContext(50, types.StrategyBalanced)
	rc.Wallet = &types.Wallet{
		Address: "0x1111111111111111111111111111111111111111",
		Balances: []types.WalletBalance{
			{Symbol: "ETH", Chain: "ethereum", ChainID: 1, Amount: 0},
			{Symbol: "USDC", Chain: "ethereum", ChainID: 1, Amount: 100},
		},
	}
	candidates := BuildCandidates(rc)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].SourceSymbol != "USDC" {
		t.Errorf("expected USDC candidate, got %s", candidates[0].SourceSymbol)
	}
}

func TestBuildCandidatesFiltersByAcceptedMethods(t *testing.T) {
	rc := demoContext(50, types.StrategyBalanced)
	rc.AcceptedMethods = []string{"usdc"} // case-insensitive match
	candidates := BuildCandidates(rc)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].SourceSymbol != "USDC" {
		t.Errorf("expected USDC candidate, got %s", candidates[0].SourceSymbol)
	}
}

func TestBuildCandidatesEmptyAcceptedListAllowsAll(t *testing.T) {
	rc := demoContext(50, types.StrategyBalanced)
	rc.AcceptedMethods = nil
	if got := len(BuildCandidates(rc)); got != 3 {
		t.Fatalf("expected 3 candidates, got %d", got)
	}
}

func TestBuildCandidatesSkipsUnknownTokens(t *testing.T) {
	rc := demoContext(50, types.StrategyBalanced)
	rc.Wallet = &types.Wallet{
		Address: "0x1111111111111111111111111111111111111111",
		Balances: []types.WalletBalance{
			{Symbol: "DOGE", Chain: "dogechain", ChainID: 2000, Amount: 999},
		},
	}
	if got := len(BuildCandidates(rc)); got != 0 {
		t.Fatalf("expected no candidates for uncataloged token, got %d", got)
	}
}

func TestBuildCandidatesExecutableFlags(t *testing.T) {
	candidates := BuildCandidates(demoContext(79.5, types.StrategyBalanced))
	bysymbol := map[string]types.RouteCandidate{}
	for _, c := range candidates {
		bysymbol[c.SourceSymbol] = c
	}

	// native asset path
	if !bysymbol["ETH"].Executable {
		t.Error("ETH route should be executable")
	}
	// same asset, same chain
	if !bysymbol["USDC"].Executable {
		t.Error("USDC→USDC same-chain route should be executable")
	}
	// cross-asset settlement is simulation-only
	if bysymbol["USDT"].Executable {
		t.Error("USDT→USDC route should not be executable")
	}
}

func TestBuildCandidatesDeterministicEstimates(t *testing.T) {
	first := BuildCandidates(demoContext(79.5, types.StrategyCheapest))
	second := BuildCandidates(demoContext(79.5, types.StrategyCheapest))
	if len(first) != len(second) {
		t.Fatalf("candidate counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].FeesTotalUSD != second[i].FeesTotalUSD {
			t.Errorf("fee estimate not reproducible: %f vs %f", first[i].FeesTotalUSD, second[i].FeesTotalUSD)
		}
		if first[i].ETAMinutes != second[i].ETAMinutes {
			t.Errorf("eta estimate not reproducible: %f vs %f", first[i].ETAMinutes, second[i].ETAMinutes)
		}
		if first[i].ID == second[i].ID {
			t.Errorf("candidate ids must be unique per call, got %s twice", first[i].ID)
		}
	}
}

func TestBuildCandidatesFeeVariesAcrossStrategies(t *testing.T) {
	balanced := BuildCandidates(demoContext(79.5, types.StrategyBalanced))
	cheapest := BuildCandidates(demoContext(79.5, types.StrategyCheapest))
	same := true
	for i := range balanced {
		if balanced[i].FeesTotalUSD != cheapest[i].FeesTotalUSD {
			same = false
		}
	}
	if same {
		t.Error("expected strategy to influence fee estimates")
	}
}

func TestBuildCandidatesDoesNotMutateWallet(t *testing.T) {
	rc := demoContext(50, types.StrategyBalanced)
	before := make([]types.WalletBalance, len(rc.Wallet.Balances))
	copy(before, rc.Wallet.Balances)

	BuildCandidates(rc)

	for i, balance := range rc.Wallet.Balances {
		if balance != before[i] {
			t.Fatalf("wallet balance %d mutated: %+v", i, balance)
		}
	}
}

func TestSeededJitterDeterministicAndBounded(t *testing.T) {
	for _, seed := range []string{"", "ETH-balanced-79.5", "USDT-ethereum"} {
		a := seededJitter(seed, 0.7, 1.12)
		b := seededJitter(seed, 0.7, 1.12)
		if a != b {
			t.Errorf("seed %q: jitter not deterministic (%f vs %f)", seed, a, b)
		}
		if a < 0.7 || a > 1.12 {
			t.Errorf("seed %q: jitter %f out of range", seed, a)
		}
	}
	values := map[float64]struct{}{}
	for _, seed := range []string{"a", "b", "c", "d", "e"} {
		values[seededJitter(seed, 0, 1)] = struct{}{}
	}
	if len(values) < 2 {
		t.Error("distinct seeds should spread across the range")
	}
}
