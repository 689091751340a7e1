package types

import (
	"fmt"
	"time"
)

// PriceMode controls how a checkout resolves its invoice amount.
type PriceMode string

const (
	PriceModeFixed    PriceMode = "fixed"
	PriceModeVariable PriceMode = "variable"
)

// Strategy is a named route optimization preference.
type Strategy string

const (
	StrategyFastest  Strategy = "fastest"
	StrategyCheapest Strategy = "cheapest"
	StrategyBalanced Strategy = "balanced"
)

// AllStrategies lists every strategy the quoting engine ranks on each call.
var AllStrategies = []Strategy{StrategyFastest, StrategyCheapest, StrategyBalanced}

func (s Strategy) String() string {
	return string(s)
}

// Valid reports whether the strategy is one of the known names.
// Unknown names fall back to balanced at ranking time.
func (s Strategy) Valid() bool {
	return s == StrategyFastest || s == StrategyCheapest || s == StrategyBalanced
}

// Checkout is a merchant-defined payment request.
type Checkout struct {
	ID                     string    `json:"id" validate:"required"`
	Title                  string    `json:"title,omitempty"`
	PriceMode              PriceMode `json:"priceMode" validate:"omitempty,oneof=fixed variable"`
	FixedAmount            float64   `json:"fixedAmount,omitempty" validate:"gte=0"`
	VariableMin            float64   `json:"variableMin,omitempty" validate:"gte=0"`
	VariableMax            float64   `json:"variableMax,omitempty" validate:"gte=0"`
	SettlementAsset        string    `json:"settlementAsset,omitempty"`
	SettlementChain        string    `json:"settlementChain,omitempty"`
	AcceptedPaymentMethods []string  `json:"acceptedPaymentMethods,omitempty"`
}

// WalletBalance is one held asset position inside a wallet.
type WalletBalance struct {
	Key      string  `json:"key,omitempty"`
	Symbol   string  `json:"symbol" validate:"required"`
	Chain    string  `json:"chain"`
	ChainID  int64   `json:"chainId"`
	Decimals int     `json:"decimals"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

// NetworkInfo carries the network metadata a wallet may attach for
// explorer-hint resolution.
type NetworkInfo struct {
	ID       int64  `json:"id"`
	Label    string `json:"label"`
	Explorer string `json:"explorer"`
}

// Wallet is the payer's caller-owned wallet state. The quoting and
// execution engines treat it as read-only input and never mutate it.
type Wallet struct {
	ID             string               `json:"id,omitempty"`
	ConnectorLabel string               `json:"connectorLabel,omitempty"`
	Address        string               `json:"address" validate:"required"`
	Chain          string               `json:"chain,omitempty"`
	ChainID        int64                `json:"chainId,omitempty"`
	Balances       []WalletBalance      `json:"balances" validate:"dive"`
	Network        *NetworkInfo         `json:"network,omitempty"`
	Provider       Transport            `json:"-"`
	Transports     map[string]Transport `json:"-"`
	IsDemo         bool                 `json:"isDemo,omitempty"`
}

// RouteMeta is display-oriented metadata attached to a route.
type RouteMeta struct {
	Method           Strategy  `json:"method"`
	Strategy         Strategy  `json:"strategy,omitempty"`
	SelectedByEngine bool      `json:"selectedByEngine"`
	GeneratedAt      time.Time `json:"generatedAt,omitempty"`
}

// RouteCandidate is one proposed way to pay an invoice: a specific
// held asset/chain settling into the checkout's asset/chain.
type RouteCandidate struct {
	ID                string    `json:"id"`
	SourceSymbol      string    `json:"sourceSymbol"`
	SourceChain       string    `json:"sourceChain"`
	SourceKey         string    `json:"sourceKey,omitempty"`
	SourceChainID     int64     `json:"sourceChainId"`
	SettlementSymbol  string    `json:"settlementSymbol"`
	SettlementChain   string    `json:"settlementChain"`
	SettlementChainID int64     `json:"settlementChainId"`
	SourceAmount      float64   `json:"sourceAmount"`
	SettlementAmount  float64   `json:"settlementAmount"`
	SettlementUSD     float64   `json:"settlementAmountUsd"`
	FeesTotalUSD      float64   `json:"feesTotalUsd"`
	GasUSD            float64   `json:"gasUsd"`
	BridgeFeeUSD      float64   `json:"bridgeFeeUsd"`
	SpreadUSD         float64   `json:"spreadUsd"`
	ETAMinutes        float64   `json:"etaMinutes"`
	Reliability       float64   `json:"reliability"`
	FailureRate       float64   `json:"failureRate"`
	Executable        bool      `json:"executable"`
	Explanation       string    `json:"explanation,omitempty"`
	Meta              RouteMeta `json:"routeMeta"`
	To                string    `json:"to,omitempty"`
}

// RankedRoute is a RouteCandidate annotated by the ranker and, after
// quoting, by the display enrichment pass.
type RankedRoute struct {
	RouteCandidate

	Rank            int     `json:"rank"`
	IsBest          bool    `json:"isBest"`
	Score           float64 `json:"score"`
	FinalPayableUSD float64 `json:"finalPayableUsd"`

	Strategy          Strategy `json:"strategy,omitempty"`
	DisplayFeeUSD     float64  `json:"displayFeeUsd,omitempty"`
	DisplayTotalUSD   float64  `json:"displayTotalUsd,omitempty"`
	DisplayETAMinutes float64  `json:"displayEtaMinutes,omitempty"`
	DisplayConfidence int      `json:"displayConfidence,omitempty"`
	Hint              string   `json:"recommendationHint,omitempty"`
}

// Quote is the result of one quoting call across all strategies.
type Quote struct {
	InvoiceUSD float64                    `json:"invoiceUsd"`
	Selected   *RankedRoute               `json:"selected,omitempty"`
	ByStrategy map[Strategy][]RankedRoute `json:"byStrategy"`
}

// ExecutionResult is the terminal state of one execution attempt.
// Every failure path is expressed here; the execution engine never
// propagates an error for a dispatch failure.
type ExecutionResult struct {
	Ok               bool     `json:"ok"`
	Status           string   `json:"status,omitempty"`
	TxHash           string   `json:"txHash,omitempty"`
	ExplorerHint     string   `json:"explorerHint,omitempty"`
	FailureReason    string   `json:"failureReason,omitempty"`
	RouteID          string   `json:"routeId,omitempty"`
	SourceSymbol     string   `json:"sourceSymbol,omitempty"`
	SettlementSymbol string   `json:"settlementSymbol,omitempty"`
	Strategy         Strategy `json:"strategy,omitempty"`
	UsedNetwork      string   `json:"usedNetwork,omitempty"`
}

// ValidationRequest is the payload handed to the validation gate
// before execution.
type ValidationRequest struct {
	ID                     string   `json:"id"`
	AmountUSD              float64  `json:"amountUsd"`
	SettlementToken        string   `json:"settlementToken"`
	AcceptedPaymentMethods []string `json:"acceptedPaymentMethods"`
	WalletAddress          string   `json:"walletAddress"`
}

// ValidationResult is the gate's verdict.
type ValidationResult struct {
	Ok      bool   `json:"ok"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Validation gate statuses.
const (
	StatusValidated        = "validated"
	StatusInvalidRequest   = "invalid_request"
	StatusInvalidAmount    = "invalid_amount"
	StatusInvalidWallet    = "invalid_wallet"
	StatusValidationFailed = "validation_failed"
	StatusInvalidRecipient = "invalid_recipient"
)

// SmartPayError is the structured error type for boundary failures.
type SmartPayError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *SmartPayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common error codes.
const (
	ErrInvalidCheckout  = "INVALID_CHECKOUT"
	ErrInvalidWallet    = "INVALID_WALLET"
	ErrInvalidRoute     = "INVALID_ROUTE"
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrTransportFailed  = "TRANSPORT_FAILED"
	ErrConfigError      = "CONFIG_ERROR"
)
