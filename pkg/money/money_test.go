package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCentsExact(t *testing.T) {
	cases := map[string]int64{
		"0":       0,
		"0.01":    1,
		"0.10":    10,
		"4.35":    435, // float64(4.35)*100 rounds to 434
		"19.99":   1999,
		"219.99":  21999,
		"1234.56": 123456,
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, ToCents(d), "ToCents(%s)", in)
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 1999, 21999, 123456} {
		assert.Equal(t, cents, ToCents(FromCents(cents)))
	}
}

func TestFromCentsDisplay(t *testing.T) {
	assert.Equal(t, "19.99", FromCents(1999).StringFixed(2))
	assert.Equal(t, "0.05", FromCents(5).StringFixed(2))
}
