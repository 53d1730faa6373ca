package importer

import "github.com/shopspring/decimal"

// CandidateType classifies the authenticated user's role in an imported expense
type CandidateType string

const (
	// TypeLent means the user paid more than their share
	TypeLent CandidateType = "lent"
	// TypeBorrowed means the user paid less than their share
	TypeBorrowed CandidateType = "borrowed"
	// TypePaidOwnShare means the user paid exactly their own share
	TypePaidOwnShare CandidateType = "you_paid"
	// TypeBalanced covers a zero net balance with no payment, normally
	// filtered out before classification
	TypeBalanced CandidateType = "balanced"
)

// Title returns the human-readable label for a candidate type
func (t CandidateType) Title() string {
	switch t {
	case TypeLent:
		return "You Lent"
	case TypeBorrowed:
		return "You Owe"
	case TypePaidOwnShare:
		return "You Paid"
	case TypeBalanced:
		return "Balanced"
	default:
		return ""
	}
}

// Share is one participant's portion of a shared expense
type Share struct {
	UserID    int64
	OwedShare string
	PaidShare string
}

// RawExpense is a single expense record as fetched from Splitwise.
// String fields carry the upstream encoding untouched: amounts may contain
// thousands separators and the date may be any of several ISO variants.
type RawExpense struct {
	ID           string
	Description  string
	Cost         string
	CurrencyCode string
	Date         string
	Category     string
	Shares       []Share
}

// ShareFor returns the share entry for the given Splitwise user id, or nil
// if the user is not a participant in the expense.
func (e *RawExpense) ShareFor(userID int64) *Share {
	for i := range e.Shares {
		if e.Shares[i].UserID == userID {
			return &e.Shares[i]
		}
	}
	return nil
}

// Candidate is an import-eligible expense pending user confirmation.
// It is never persisted by the import pipeline itself.
type Candidate struct {
	SplitwiseID  string          `json:"splitwise_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Date         string          `json:"date"`
	Category     string          `json:"category"`
	Type         CandidateType   `json:"expense_type"`
	Title        string          `json:"expense_title"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	OwedShare    decimal.Decimal `json:"owed_share"`
	PaidShare    decimal.Decimal `json:"paid_share"`
	TotalExpense decimal.Decimal `json:"total_expense"`

	// AlreadyImported is true when a stored expense with the same
	// (splitwise_id, user) pair exists. Duplicates are still returned so
	// the client can present them as already imported.
	AlreadyImported bool `json:"already_imported"`
}

// Skip reasons surfaced to the client. Not-a-participant skips are counted
// but never listed.
const (
	ReasonNotParticipant  = "Not a participant"
	ReasonNoShare         = "No share in expense"
	ReasonSomeoneElsePaid = "Someone else paid"
	ReasonPaymentName     = "Expense name is 'Payment'"
)

// SkipReason records why a fetched expense was not offered as a candidate
type SkipReason struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
}

// Result is the outcome of one import run
type Result struct {
	Message         string       `json:"message"`
	Expenses        []Candidate  `json:"expenses"`
	Count           int          `json:"count"`
	Skipped         int          `json:"skipped"`
	TotalFetched    int          `json:"total_fetched"`
	SkippedExpenses []SkipReason `json:"skipped_expenses"`
}
