package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a ledger record.
type Category string

const (
	CategoryProduct Category = "product"
	CategoryService Category = "service"
	CategoryNote    Category = "note"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProduct, CategoryService, CategoryNote:
		return true
	}
	return false
}

// Record is a single entry in the sales ledger. Records are immutable
// once stored; the only mutations are delete-last and reset-all.
type Record struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Item      string          `json:"item"`
	Category  Category        `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
}

// Draft is the caller-supplied part of a Record. ID and CreatedAt are
// assigned by the storage layer on insert.
type Draft struct {
	UserID   int64
	Item     string
	Category Category
	Amount   decimal.Decimal
	Quantity int
}

// Total returns the sum of amount × quantity over the given records.
// Reports and the daily digest share this one definition of "total".
func Total(records []*Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	return total
}
