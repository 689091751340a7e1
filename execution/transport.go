package execution

import (
	"strconv"
	"strings"

	"github.com/hot-labs/smartpay-go/types"
)

// normalizeChainKey picks the transport-map key for a route: the
// lower-cased chain name, or the stringified chain id when the route
// carries no chain name.
func normalizeChainKey(route *types.RankedRoute) string {
	if route == nil {
		return ""
	}
	if chain := strings.ToLower(route.SourceChain); chain != "" {
		return chain
	}
	if route.SourceChainID == 0 {
		return ""
	}
	return strconv.FormatInt(route.SourceChainID, 10)
}

// resolveTransport applies the documented resolution precedence:
// explicit resolver, options transport map, wallet transport map, bare
// provider on the options, bare provider on the wallet. The first
// non-nil match wins.
func resolveTransport(route *types.RankedRoute, opts *Options) types.Transport {
	if opts.TransportResolver != nil {
		if resolved := opts.TransportResolver(route, opts.Wallet); resolved != nil {
			return resolved
		}
	}

	chainKey := normalizeChainKey(route)
	if chainKey != "" && opts.Transports != nil {
		if transport, ok := opts.Transports[chainKey]; ok && transport != nil {
			return transport
		}
	}

	if opts.Wallet != nil && opts.Wallet.Transports != nil {
		if transport, ok := opts.Wallet.Transports[chainKey]; ok && transport != nil {
			return transport
		}
		if route != nil && route.SourceChainID != 0 {
			idKey := strconv.FormatInt(route.SourceChainID, 10)
			if transport, ok := opts.Wallet.Transports[idKey]; ok && transport != nil {
				return transport
			}
		}
	}

	if opts.Provider != nil {
		return opts.Provider
	}
	if opts.Wallet != nil && opts.Wallet.Provider != nil {
		return opts.Wallet.Provider
	}
	return nil
}

// extractTxHash normalizes the recognized transport response shapes to
// a transaction hash. Unrecognized shapes yield the empty string.
func extractTxHash(response interface{}) string {
	switch value := response.(type) {
	case nil:
		return ""
	case string:
		return value
	case types.TxHashCarrier:
		return value.TxHash()
	case *types.TransportResponse:
		if value == nil {
			return ""
		}
		if value.Hash != "" {
			return value.Hash
		}
		return value.TransactionHash
	case types.TransportResponse:
		if value.Hash != "" {
			return value.Hash
		}
		return value.TransactionHash
	default:
		return ""
	}
}
