package income

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a single income record
type Income struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        string
	Category    string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the income record
func (i *Income) Validate() error {
	if i.Description == "" {
		return ErrEmptyDescription
	}
	if i.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
