package currency

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var ErrInvalidRate = errors.New("invalid currency rate")

// Converter turns catalog base-unit amounts into whole display-currency units.
type Converter struct {
	Code   string
	Symbol string
	rate   decimal.Decimal
}

// NewConverter creates a converter with a fixed multiplicative rate.
func NewConverter(code, symbol string, rate float64) (*Converter, error) {
	if rate <= 0 {
		return nil, ErrInvalidRate
	}

	return &Converter{
		Code:   code,
		Symbol: symbol,
		rate:   decimal.NewFromFloat(rate),
	}, nil
}

// MustNewConverterFromConfig reads the display currency from config.
func MustNewConverterFromConfig() *Converter {
	code := viper.GetString("currency.display_code")
	if code == "" {
		code = "INR"
	}
	symbol := viper.GetString("currency.display_symbol")
	if symbol == "" {
		symbol = "₹"
	}
	rate := viper.GetFloat64("currency.rate")
	if rate == 0 {
		rate = 83.5
	}

	c, err := NewConverter(code, symbol, rate)
	if err != nil {
		panic(err)
	}

	return c
}

// Rate returns the conversion rate.
func (c *Converter) Rate() float64 {
	return c.rate.InexactFloat64()
}

// Display converts amount and rounds to the nearest whole unit.
func (c *Converter) Display(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(c.rate).Round(0).IntPart()
}

// LineTotal is the display unit price multiplied by quantity.
// Rounding happens per unit, before multiplying.
func (c *Converter) LineTotal(unitPrice float64, quantity int) int64 {
	return c.Display(unitPrice) * int64(quantity)
}
