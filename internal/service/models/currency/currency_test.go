package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Display(t *testing.T) {
	c, err := NewConverter("INR", "₹", 83.5)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole", amount: 40, want: 3340},
		{name: "rounds half up", amount: 0.01, want: 1},
		{name: "fraction", amount: 19.99, want: 1669},
		{name: "zero", amount: 0, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Display(tc.amount))
		})
	}
}

func TestConverter_LineTotalRoundsPerUnit(t *testing.T) {
	c, err := NewConverter("INR", "₹", 83.5)
	require.NoError(t, err)

	// 19.99 * 83.5 = 1669.165 -> 1669 per unit
	assert.Equal(t, int64(3338), c.LineTotal(19.99, 2))
	assert.Equal(t, int64(3340), c.LineTotal(20, 2))
}

func TestNewConverter_InvalidRate(t *testing.T) {
	_, err := NewConverter("INR", "₹", 0)
	assert.ErrorIs(t, err, ErrInvalidRate)
}
