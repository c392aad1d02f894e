package utils

import (
	"math"
	"math/big"
)

// RawToDecimal converts a raw on-chain integer amount to a decimal number by
// dividing it by 10^decimals. The division runs on big.Float so raw values up
// to typical token magnitudes (~10^30) convert without binary round-off
// showing up within two decimal places.
func RawToDecimal(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	amount := new(big.Float).SetInt(raw)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(amount, divisor).Float64()
	return value
}

// Round2 rounds to exactly two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
