// Package encoding converts decimal amounts into the 0x-prefixed
// fixed-point hex strings value transfers expect.
package encoding

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ToHex scales an amount by 10^decimals and renders it as a
// 0x-prefixed lowercase hex string. Non-finite input yields "0x0".
func ToHex(amount float64, decimals int32) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0x0"
	}
	return ToHexString(strconv.FormatFloat(amount, 'f', -1, 64), decimals)
}

// ToHexString is the exact form of ToHex: the amount is parsed as a
// decimal string and scaled with arbitrary-precision integer
// arithmetic, so high decimal counts never hit floating-point
// rounding. Fractional digits beyond the requested precision are
// truncated. Unparseable input yields "0x0".
func ToHexString(amount string, decimals int32) string {
	if decimals < 0 {
		decimals = 0
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "0x0"
	}
	scaled := value.Shift(decimals).Truncate(0).BigInt()
	return "0x" + scaled.Text(16)
}
