package validation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hot-labs/smartpay-go/types"
)

const goodAddress = "0x1111111111111111111111111111111111111111"

func TestValidatePayloadHappyPath(t *testing.T) {
	gate := NewLocalGate()
	result, err := gate.ValidateCheckoutPayload(context.Background(), &types.ValidationRequest{
		ID:              "checkout-1",
		AmountUSD:       79.5,
		SettlementToken: "USDC",
		WalletAddress:   goodAddress,
	})

	require.NoError(t, err)
	assert.True(t, result.Ok)
	assert.Equal(t, types.StatusValidated, result.Status)
	assert.Equal(t, "Payload validated locally.", result.Message)
}

func TestValidatePayloadMissingReference(t *testing.T) {
	gate := NewLocalGate()

	for _, payload := range []*types.ValidationRequest{
		nil,
		{},
		{ID: "   ", AmountUSD: 10},
	} {
		result, err := gate.ValidateCheckoutPayload(context.Background(), payload)
		require.NoError(t, err)
		assert.False(t, result.Ok)
		assert.Equal(t, types.StatusInvalidRequest, result.Status)
	}
}

func TestValidatePayloadAmountChecks(t *testing.T) {
	gate := NewLocalGate()

	for _, amount := range []float64{0, -3.2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		result, err := gate.ValidateCheckoutPayload(context.Background(), &types.ValidationRequest{
			ID:            "checkout-1",
			AmountUSD:     amount,
			WalletAddress: goodAddress,
		})
		require.NoError(t, err)
		assert.False(t, result.Ok)
		assert.Equal(t, types.StatusInvalidAmount, result.Status)
		assert.Equal(t, "Amount must be a positive number.", result.Message)
	}
}

func TestValidatePayloadWalletChecks(t *testing.T) {
	gate := NewLocalGate()

	badAddresses := []string{
		"1111111111111111111111111111111111111111",   // no 0x prefix
		"0x1111",                                     // too short
		"0xZZ11111111111111111111111111111111111111", // non-hex
		"",
	}
	for _, address := range badAddresses {
		result, err := gate.ValidateCheckoutPayload(context.Background(), &types.ValidationRequest{
			ID:            "checkout-1",
			AmountUSD:     10,
			WalletAddress: address,
		})
		require.NoError(t, err)
		if address == "" {
			// An id alone passes the reference check but fails here.
			assert.Equal(t, types.StatusInvalidWallet, result.Status)
			continue
		}
		assert.False(t, result.Ok)
		assert.Equal(t, types.StatusInvalidWallet, result.Status)
	}
}

func TestValidatePayloadCheckOrder(t *testing.T) {
	gate := NewLocalGate()

	// A bad amount is reported before the wallet address is inspected.
	result, err := gate.ValidateCheckoutPayload(context.Background(), &types.ValidationRequest{
		ID:            "checkout-1",
		AmountUSD:     -1,
		WalletAddress: "not-an-address",
	})
	require.NoError(t, err)
	assert.Equal(t, types.StatusInvalidAmount, result.Status)
}
