package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]int64{
		"49.99":       4999,
		"50":          5000,
		"0":           0,
		"1.5":         150,
		"10.500":      1050,
		"999999.99":   MaxPriceCents,
		"1000000.00":  -1,
		"-1.00":       -1,
		"10.999":      -1,
		"twelve":      -1,
		"99999999999": -1,
	}
	for in, want := range cases {
		got, err := ParsePrice(in)
		if want < 0 {
			assert.Error(t, err, in)
			continue
		}
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParsePriceRejectsValuesBeyondInt64(t *testing.T) {
	// Both would wrap to small amounts if converted to cents first.
	for _, in := range []string{"184467440737095516.16", "184467440737095617.16", "1e30"} {
		_, err := ParsePrice(in)
		assert.Error(t, err, in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "50.00", FormatCents(5000))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "999999.99", FormatCents(MaxPriceCents))
}
