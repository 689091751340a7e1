package execution

import (
	"strconv"

	"github.com/hot-labs/smartpay-go/types"
)

// defaultChainExplorers maps chain names and stringified chain ids to
// block-explorer URL templates.
var defaultChainExplorers = map[string]string{
	"ethereum": "https://etherscan.io/tx/",
	"1":        "https://etherscan.io/tx/",
}

const fallbackExplorer = "https://etherscan.io/tx/"

// resolveExplorer picks the first available explorer URL template:
// the transport's own hint, the known-chain table keyed by the
// transport's chain id, the wallet's network metadata, then the
// route's chain fields, and finally the default.
func resolveExplorer(route *types.RankedRoute, transport types.Transport, wallet *types.Wallet) string {
	if hinter, ok := transport.(types.ExplorerHinter); ok {
		if url := hinter.ExplorerURL(); url != "" {
			return url
		}
	}

	if hinter, ok := transport.(types.ChainHinter); ok {
		if url, found := defaultChainExplorers[strconv.FormatInt(hinter.ChainID(), 10)]; found {
			return url
		}
	}

	if wallet != nil && wallet.Network != nil && wallet.Network.Explorer != "" {
		return wallet.Network.Explorer
	}

	if route != nil {
		if url, found := defaultChainExplorers[route.SourceChain]; found {
			return url
		}
		if url, found := defaultChainExplorers[strconv.FormatInt(route.SourceChainID, 10)]; found {
			return url
		}
	}

	return fallbackExplorer
}
