package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense types. Manual entries come from the user directly; the rest are
// confirmed Splitwise import candidates.
const (
	TypeManual   = "manual"
	TypeLent     = "lent"
	TypeBorrowed = "borrowed"
	TypePaid     = "you_paid"
)

// Expense is a single tracked expense belonging to one user.
// Date is kept as the ISO-8601 string supplied by the client or the import
// source; imported dates pass through unmodified.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        string
	Category    string
	GroupID     *uuid.UUID
	Type        string

	// Share diagnostics carried over from a Splitwise import
	TotalExpense decimal.Decimal
	OwedShare    decimal.Decimal
	PaidShare    decimal.Decimal

	// SplitwiseID links an imported expense back to its source record.
	// (user_id, splitwise_id) is unique in storage, which settles the
	// write race between concurrent imports of the same record.
	SplitwiseID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the expense
func (e *Expense) Validate() error {
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}
