package bot

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned for text that is not a non-negative
// number. The session is left untouched so the user can retry.
var ErrInvalidPrice = errors.New("price must be a non-negative number")

// ParsePrice parses operator-typed price text. Both "." and "," are
// accepted as the decimal separator.
func ParsePrice(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", ".")
	if text == "" {
		return decimal.Zero, ErrInvalidPrice
	}

	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}
