// Package routing generates and ranks payment route candidates for a
// single invoice against a payer's wallet holdings.
package routing

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/types"
)

// Per-chain base delays in minutes for same-chain and bridged routes.
var bridgeDelayVariance = map[string]struct {
	SameChain float64
	Bridge    float64
}{
	"ethereum": {SameChain: 0.4, Bridge: 2.4},
}

// Strategy biases applied to the raw network fee.
var feeStrategyBias = map[types.Strategy]float64{
	types.StrategyFastest:  1.12,
	types.StrategyBalanced: 0.98,
	types.StrategyCheapest: 0.78,
}

// Strategy biases applied to the base settlement delay.
var etaStrategyBias = map[types.Strategy]float64{
	types.StrategyFastest:  0.52,
	types.StrategyBalanced: 0.82,
	types.StrategyCheapest: 1.18,
}

// Context is the shared routing input built once per quote request.
type Context struct {
	InvoiceUSD      float64
	SettlementToken catalog.Token
	Wallet          *types.Wallet
	Catalog         *catalog.Catalog
	AcceptedMethods []string
	Strategy        types.Strategy
	Networks        map[string]catalog.Network
}

func normalizeStrategy(strategy types.Strategy) types.Strategy {
	if !strategy.Valid() {
		return types.StrategyBalanced
	}
	return strategy
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func estimateBaseFee(network catalog.Network, sameChain bool, settlementPenalty float64) float64 {
	baseUSD := network.GasBaseUSD
	spread := 0.35
	if !sameChain {
		baseUSD += 3.8
		spread = 0.85
	}
	return baseUSD + spread + settlementPenalty
}

func estimateNetworkFee(strategy types.Strategy, token catalog.Token, network catalog.Network, invoiceUSD float64, sameChain bool) float64 {
	base := estimateBaseFee(network, sameChain, 0)

	marketAdj := 1.012
	if invoiceUSD > 500 {
		marketAdj = 1.007
	}

	discount := 0.0
	switch strategy {
	case types.StrategyCheapest:
		discount = 0.06
	case types.StrategyBalanced:
		discount = 0.01
	}

	seed := token.Symbol + "-" + strategy.String() + "-" + formatAmount(invoiceUSD)
	jitter := seededJitter(seed, 0.7, 1.12)

	fee := base * marketAdj * feeStrategyBias[strategy] * (1 - discount) * jitter / 4
	if fee < 0.3 {
		fee = 0.3
	}
	return fee
}

func estimateETA(strategy types.Strategy, sameChain bool, chain string) float64 {
	variance, ok := bridgeDelayVariance[chain]
	if !ok {
		variance = bridgeDelayVariance["ethereum"]
	}
	base := variance.Bridge
	if sameChain {
		base = variance.SameChain
	}
	seed := strategy.String() + "-" + chain + "-" + formatAmount(base)
	jitter := seededJitter(seed, 0.85, 1.18)
	eta := base * etaStrategyBias[strategy] * jitter
	return round2(eta)
}

func round2(value float64) float64 {
	parsed, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 2, 64), 64)
	return parsed
}

// Reliability of a route is the chain base minus the bridge and
// invoice-size penalties, clamped into [0.9, 0.999].
func calculateReliability(chainBase, bridgeRisk, sizeRisk float64) float64 {
	return clamp(chainBase-bridgeRisk-sizeRisk, 0.9, 0.999)
}

func newCandidateID(chain, symbol string) string {
	stamp := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return fmt.Sprintf("route:%s:%s:%s:%s", chain, symbol, stamp, uuid.NewString()[:8])
}

// BuildCandidates produces one route candidate per eligible wallet
// balance. A balance is eligible when its symbol is in the accepted
// method set (if that set is non-empty), it resolves against the token
// catalog, and the held amount is strictly positive. Inputs are never
// mutated.
func BuildCandidates(rc *Context) []types.RouteCandidate {
	strategy := normalizeStrategy(rc.Strategy)

	settlement := rc.SettlementToken
	if settlement.Symbol == "" {
		settlement.Symbol = "USDC"
	}
	if settlement.Chain == "" {
		settlement.Chain = "ethereum"
	}

	networks := rc.Networks
	if networks == nil {
		networks = catalog.Networks
	}

	accepted := make(map[string]struct{}, len(rc.AcceptedMethods))
	for _, method := range catalog.NormalizeTokenList(rc.AcceptedMethods) {
		accepted[method] = struct{}{}
	}

	candidates := make([]types.RouteCandidate, 0, len(rc.Wallet.Balances))
	for _, asset := range rc.Wallet.Balances {
		token, ok := rc.Catalog.FindToken(asset.Symbol, asset.ChainID)
		if !ok {
			continue
		}
		if len(accepted) > 0 {
			if _, ok := accepted[token.Symbol]; !ok {
				continue
			}
		}
		if asset.Amount <= 0 {
			continue
		}

		sameChain := asset.Chain == settlement.Chain
		sourceNetwork := resolveNetwork(networks, asset.Chain, asset.ChainID)
		settlementNetwork := resolveNetwork(networks, settlement.Chain, settlement.ChainID)

		feeUSD := estimateNetworkFee(strategy, token, sourceNetwork, rc.InvoiceUSD, sameChain)

		bridgePenalty := 0.0
		if !sameChain {
			bridgePenalty = seededJitter(asset.Symbol+"-"+token.Chain, 0.25, 0.95)
		}

		sourceRate := token.USD
		if sourceRate == 0 {
			sourceRate = 1
		}
		requiredSource := (rc.InvoiceUSD / sourceRate) * (1 + bridgePenalty*0.008)
		spread := (rc.InvoiceUSD / sourceRate) * (1 + bridgePenalty*0.006)

		etaMinutes := estimateETA(strategy, sameChain, token.Chain)

		chainBase := 0.96
		if sameChain {
			chainBase = 0.985
		}
		reliability := calculateReliability(chainBase, bridgePenalty*0.02, rc.InvoiceUSD*0.000001)

		executable := token.Symbol == "ETH" || (settlement.Symbol == token.Symbol && sameChain)

		settlementAmount := rc.InvoiceUSD
		if settlement.Symbol != "USDC" && settlement.Symbol != "USDT" {
			settlementAmount = rc.InvoiceUSD / sourceRate
		}

		gasUSD := sourceNetwork.GasBaseUSD
		if gasUSD == 0 {
			gasUSD = settlementNetwork.GasBaseUSD
		}
		if gasUSD == 0 {
			gasUSD = 4
		}

		explanation := fmt.Sprintf("Bridge and settle to %s using HOT Kit swap path", settlement.Chain)
		if sameChain {
			explanation = fmt.Sprintf("Direct on %s", token.Chain)
		}

		candidates = append(candidates, types.RouteCandidate{
			ID:                newCandidateID(token.Chain, token.Symbol),
			SourceSymbol:      token.Symbol,
			SourceChain:       token.Chain,
			SourceKey:         token.Key,
			SourceChainID:     tokenChainID(token, sourceNetwork),
			SettlementSymbol:  settlement.Symbol,
			SettlementChain:   settlement.Chain,
			SettlementChainID: tokenChainID(settlement, settlementNetwork),
			SourceAmount:      catalog.RoundMoney(requiredSource + spread*0.0006),
			SettlementUSD:     catalog.RoundMoney(rc.InvoiceUSD * 0.9975),
			SettlementAmount:  settlementAmount,
			FeesTotalUSD:      catalog.RoundMoney(feeUSD + bridgePenalty),
			GasUSD:            catalog.RoundMoney(gasUSD),
			BridgeFeeUSD:      catalog.RoundMoney(bridgePenalty + 0.3),
			SpreadUSD:         catalog.RoundMoney(spread),
			ETAMinutes:        etaMinutes,
			Reliability:       reliability,
			FailureRate:       round4(1 - reliability + 0.012 + bridgePenalty*0.03),
			Executable:        executable,
			Explanation:       explanation,
			Meta: types.RouteMeta{
				Method:           strategy,
				SelectedByEngine: true,
			},
		})
	}

	return candidates
}

func resolveNetwork(networks map[string]catalog.Network, chain string, chainID int64) catalog.Network {
	if network, ok := networks[chain]; ok {
		return network
	}
	if network, ok := networks[strconv.FormatInt(chainID, 10)]; ok {
		return network
	}
	return catalog.DefaultNetwork()
}

func tokenChainID(token catalog.Token, network catalog.Network) int64 {
	if token.ChainID != 0 {
		return token.ChainID
	}
	if network.ID != 0 {
		return network.ID
	}
	return 1
}

func round4(value float64) float64 {
	parsed, _ := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 4, 64), 64)
	return parsed
}
