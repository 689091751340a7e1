// Package validation implements the pre-execution payload check the
// SDK facade runs before delegating to the execution engine.
package validation

import (
	"context"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hot-labs/smartpay-go/types"
)

// Gate checks an execution payload before any transport work happens.
// Implementations report verdicts as values; an error is reserved for
// the gate itself being unreachable.
type Gate interface {
	ValidateCheckoutPayload(ctx context.Context, payload *types.ValidationRequest) (*types.ValidationResult, error)
}

// LocalGate validates payloads locally against the HOT validation
// contract: a request must reference a checkout or a wallet, carry a
// positive finite amount, and name a well-formed EVM wallet address.
type LocalGate struct {
	// Endpoint is kept for parity with the remote validation service;
	// the local gate never calls it.
	Endpoint string
}

// NewLocalGate builds a gate with the default endpoint.
func NewLocalGate() *LocalGate {
	return &LocalGate{Endpoint: "https://api.hot-labs.org"}
}

// ValidateCheckoutPayload applies the gate checks in order and returns
// the first failing status, or "validated".
func (g *LocalGate) ValidateCheckoutPayload(_ context.Context, payload *types.ValidationRequest) (*types.ValidationResult, error) {
	checkoutID := ""
	walletAddress := ""
	amountUSD := 0.0
	if payload != nil {
		checkoutID = strings.TrimSpace(payload.ID)
		walletAddress = payload.WalletAddress
		amountUSD = payload.AmountUSD
	}

	if checkoutID == "" && walletAddress == "" {
		return &types.ValidationResult{
			Ok:      false,
			Status:  types.StatusInvalidRequest,
			Message: "Missing checkout reference or wallet address.",
		}, nil
	}

	if math.IsNaN(amountUSD) || math.IsInf(amountUSD, 0) || amountUSD <= 0 {
		return &types.ValidationResult{
			Ok:      false,
			Status:  types.StatusInvalidAmount,
			Message: "Amount must be a positive number.",
		}, nil
	}

	if walletAddress == "" || !isEVMAddress(walletAddress) {
		return &types.ValidationResult{
			Ok:      false,
			Status:  types.StatusInvalidWallet,
			Message: "Wallet address is not a valid EVM address.",
		}, nil
	}

	return &types.ValidationResult{
		Ok:      true,
		Status:  types.StatusValidated,
		Message: "Payload validated locally.",
	}, nil
}

// isEVMAddress requires the 0x prefix plus 40 hex characters.
func isEVMAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}
