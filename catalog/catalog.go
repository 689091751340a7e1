// Package catalog holds the static settlement/payment token and network
// reference data used by the routing and execution engines. The data is
// process-wide, initialized once, and never mutated.
package catalog

import (
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token is immutable token reference data.
type Token struct {
	Key      string  `json:"key"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	USD      float64 `json:"usd"`
	ChainID  int64   `json:"chainId"`
	Chain    string  `json:"chain"`
	Decimals int     `json:"decimals"`
	Contract string  `json:"contract,omitempty"`
}

// Network is immutable chain reference data.
type Network struct {
	ID             int64   `json:"id"`
	Label          string  `json:"label"`
	GasBaseUSD     float64 `json:"gasBaseUsd"`
	LatencyMinutes float64 `json:"latencyMinutes"`
	Reliability    float64 `json:"reliability"`
	Explorer       string  `json:"explorer"`
	RPCChainID     int64   `json:"rpcChainId"`
}

// Tokens is the known settlement/payment token set.
var Tokens = map[string]Token{
	"eth": {
		Key:      "eth",
		Symbol:   "ETH",
		Name:     "Ethereum",
		USD:      3200,
		ChainID:  1,
		Chain:    "ethereum",
		Decimals: 18,
	},
	"usdc": {
		Key:      "usdc",
		Symbol:   "USDC",
		Name:     "USD Coin",
		USD:      1,
		ChainID:  1,
		Chain:    "ethereum",
		Decimals: 6,
		Contract: "0xA0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	},
	"usdt": {
		Key:      "usdt",
		Symbol:   "USDT",
		Name:     "Tether",
		USD:      1,
		ChainID:  1,
		Chain:    "ethereum",
		Decimals: 6,
		Contract: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	},
}

// Networks maps chain name to network metadata.
var Networks = map[string]Network{
	"ethereum": {
		ID:             1,
		Label:          "Ethereum",
		GasBaseUSD:     5.8,
		LatencyMinutes: 3.8,
		Reliability:    0.985,
		Explorer:       "https://etherscan.io/tx/",
		RPCChainID:     1,
	},
}

// SupportedMethods is the default accepted-payment-method set applied
// when a checkout does not restrict methods itself.
var SupportedMethods = []string{"ETH", "USDC", "USDT"}

// DefaultNetwork is the fallback for unregistered chains.
func DefaultNetwork() Network {
	return Networks["ethereum"]
}

// Catalog is the joined token/network view routing works against.
type Catalog struct {
	Tokens   []Token
	BySymbol map[string]Token
	Networks map[string]Network
}

// Resolve builds the catalog view. Token order is stable so candidate
// generation is deterministic across calls.
func Resolve() *Catalog {
	keys := []string{"eth", "usdc", "usdt"}
	tokens := make([]Token, 0, len(keys))
	bySymbol := make(map[string]Token, len(keys))
	for _, key := range keys {
		token := Tokens[key]
		tokens = append(tokens, token)
		bySymbol[token.Symbol] = token
	}
	return &Catalog{
		Tokens:   tokens,
		BySymbol: bySymbol,
		Networks: Networks,
	}
}

// FindToken resolves a token by symbol and chain id.
func (c *Catalog) FindToken(symbol string, chainID int64) (Token, bool) {
	for _, token := range c.Tokens {
		if token.Symbol == symbol && token.ChainID == chainID {
			return token, true
		}
	}
	return Token{}, false
}

// RoundMoney rounds a USD amount to the 6-decimal display contract.
func RoundMoney(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(value).Round(6).Float64()
	return rounded
}

// SanitizeAmount coerces a value to a rounded non-NaN amount, falling
// back when the input is not finite.
func SanitizeAmount(value, fallback float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return RoundMoney(fallback)
	}
	return RoundMoney(value)
}

// EnsureWithinRange clamps a sanitized amount into [min, max].
func EnsureWithinRange(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, SanitizeAmount(value, 0)))
}

// NormalizeTokenList upper-cases and de-duplicates a symbol list,
// preserving first-seen order and dropping empties.
func NormalizeTokenList(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		symbol := strings.ToUpper(strings.TrimSpace(value))
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}

// NormalizeAddress lower-cases an address for map keys and comparisons.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// IsLikelyEVMAddress reports whether the value is a well-formed
// 20-byte hex address with the 0x prefix.
func IsLikelyEVMAddress(address string) bool {
	return common.IsHexAddress(address) && strings.HasPrefix(address, "0x")
}

// ShortAddress renders the usual 0x1234...abcd form for display.
func ShortAddress(address string) string {
	if address == "" {
		return ""
	}
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// RoutePriorityHint buckets a route's failure rate into a confidence tier.
func RoutePriorityHint(failureRate float64) string {
	if failureRate <= 0 {
		failureRate = 0.25
	}
	switch {
	case failureRate <= 0.11:
		return "Very high confidence"
	case failureRate <= 0.21:
		return "Good"
	default:
		return "Fallback route"
	}
}
