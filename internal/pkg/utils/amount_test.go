package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals uint8
		want     float64
	}{
		{name: "one whole token at 18 decimals", raw: "1000000000000000000", decimals: 18, want: 1},
		{name: "six decimal stablecoin", raw: "2000000000", decimals: 6, want: 2000},
		{name: "zero", raw: "0", decimals: 18, want: 0},
		{name: "no decimals", raw: "42", decimals: 0, want: 42},
		{name: "fractional", raw: "1500000000000000000", decimals: 18, want: 1.5},
		{name: "large magnitude", raw: "1000000000000000000000000000000", decimals: 18, want: 1e12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := new(big.Int).SetString(tt.raw, 10)
			require.True(t, ok)
			require.InDelta(t, tt.want, RawToDecimal(raw, tt.decimals), 1e-9)
		})
	}
}

func TestRawToDecimalNil(t *testing.T) {
	require.Zero(t, RawToDecimal(nil, 18))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 6000, want: 6000},
		{in: 1.234, want: 1.23},
		{in: 1.236, want: 1.24},
		{in: 0.125, want: 0.13}, // half rounds away from zero
		{in: -0.125, want: -0.13},
		{in: 0, want: 0},
	}

	for _, tt := range tests {
		require.InDelta(t, tt.want, Round2(tt.in), 1e-9)
	}
}
