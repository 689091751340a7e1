package routing

import (
	"sort"

	"github.com/hot-labs/smartpay-go/catalog"
	"github.com/hot-labs/smartpay-go/types"
)

// strategyWeights biases the cost function per strategy. Higher weight
// means the corresponding term contributes less to the score.
type strategyWeights struct {
	Fee         float64
	ETA         float64
	Reliability float64
}

var rankWeights = map[types.Strategy]strategyWeights{
	types.StrategyFastest:  {Fee: 0.10, ETA: 0.82, Reliability: 0.08},
	types.StrategyBalanced: {Fee: 0.40, ETA: 0.35, Reliability: 0.25},
	types.StrategyCheapest: {Fee: 0.82, ETA: 0.10, Reliability: 0.08},
}

// Rank orders candidates under a strategy and annotates rank, isBest,
// score, and finalPayableUsd. The input slice is not modified. Unknown
// strategies fall back to balanced. The sort is stable: ties keep the
// candidates' relative input order.
func Rank(candidates []types.RouteCandidate, strategy types.Strategy) []types.RankedRoute {
	weights, ok := rankWeights[strategy]
	if !ok {
		weights = rankWeights[types.StrategyBalanced]
	}

	ranked := make([]types.RankedRoute, 0, len(candidates))
	for _, candidate := range candidates {
		reliability := candidate.Reliability
		if reliability == 0 {
			reliability = 0.95
		}
		feeScore := candidate.FeesTotalUSD * (1 - weights.Fee)
		etaScore := candidate.ETAMinutes * (1 - weights.ETA)
		reliabilityScore := (1 - reliability) * 100 * (1 - weights.Reliability)

		ranked = append(ranked, types.RankedRoute{
			RouteCandidate: candidate,
			Score:          feeScore + etaScore + reliabilityScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].IsBest = i == 0
		ranked[i].FinalPayableUSD = catalog.RoundMoney(ranked[i].FeesTotalUSD + ranked[i].SettlementUSD)
	}

	return ranked
}
