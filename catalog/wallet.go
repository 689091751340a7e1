package catalog

import (
	"strings"

	"github.com/hot-labs/smartpay-go/types"
)

const demoWalletAddress = "0xDeMoWa11eT0000000000000000000000000001"

// DemoBalances returns the default demo wallet holdings joined against
// the token catalog.
func DemoBalances() []types.WalletBalance {
	eth := Tokens["eth"]
	usdc := Tokens["usdc"]
	usdt := Tokens["usdt"]
	return []types.WalletBalance{
		{Key: eth.Key, Symbol: eth.Symbol, Chain: eth.Chain, ChainID: eth.ChainID, Decimals: eth.Decimals, Amount: 4.7},
		{Key: usdc.Key, Symbol: usdc.Symbol, Chain: usdc.Chain, ChainID: usdc.ChainID, Decimals: usdc.Decimals, Amount: 12400},
		{Key: usdt.Key, Symbol: usdt.Symbol, Chain: usdt.Chain, ChainID: usdt.ChainID, Decimals: usdt.Decimals, Amount: 7800},
	}
}

// DemoWalletOption mutates the demo wallet during construction.
type DemoWalletOption func(*types.Wallet)

// WithAddress overrides the demo wallet address.
func WithAddress(address string) DemoWalletOption {
	return func(w *types.Wallet) { w.Address = address }
}

// WithTransports attaches a chain-keyed transport map.
func WithTransports(transports map[string]types.Transport) DemoWalletOption {
	return func(w *types.Wallet) { w.Transports = transports }
}

// WithProvider attaches a bare provider transport.
func WithProvider(provider types.Transport) DemoWalletOption {
	return func(w *types.Wallet) { w.Provider = provider }
}

// NewDemoWallet builds a self-contained wallet preloaded with the demo
// balances. Useful for examples and as a quoting fixture.
func NewDemoWallet(opts ...DemoWalletOption) *types.Wallet {
	network := Networks["ethereum"]
	wallet := &types.Wallet{
		ID:             "demo",
		ConnectorLabel: "Demo Wallet",
		Chain:          strings.ToLower(network.Label),
		ChainID:        network.RPCChainID,
		Address:        demoWalletAddress,
		Balances:       DemoBalances(),
		Network: &types.NetworkInfo{
			ID:       network.ID,
			Label:    network.Label,
			Explorer: network.Explorer,
		},
		IsDemo: true,
	}
	for _, opt := range opts {
		opt(wallet)
	}
	return wallet
}
