package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	defaultCurrency = "USD"
	defaultCategory = "Uncategorized"

	// Splitwise records its own settlement transactions as expenses named
	// "Payment"; they are not real expenses and are always skipped.
	paymentDescription = "payment"

	// parse-error detail is truncated to keep skip entries bounded
	maxParseErrorLen = 50
)

// Classifier decides, per raw expense, whether the authenticated user gets
// an import candidate and what it looks like. One instance is stateless and
// safe to share.
type Classifier struct{}

// NewClassifier creates a new Classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify evaluates one raw expense against the caller's Splitwise user id.
// Exactly one of the returned candidate and skip reason is non-nil. A skip
// with Reason == ReasonNotParticipant counts toward the skipped total but is
// not shown in the skip list.
func (c *Classifier) Classify(exp RawExpense, splitwiseUserID int64) (*Candidate, *SkipReason) {
	share := exp.ShareFor(splitwiseUserID)
	if share == nil {
		return nil, c.skip(exp, ReasonNotParticipant)
	}

	owed, err := parseAmount(share.OwedShare)
	if err != nil {
		return nil, c.parseErrorSkip(exp, err)
	}

	paid, err := parseAmount(share.PaidShare)
	if err != nil {
		return nil, c.parseErrorSkip(exp, err)
	}

	total, err := parseAmount(exp.Cost)
	if err != nil {
		return nil, c.parseErrorSkip(exp, err)
	}

	// Positive net: others owe the user. Negative: the user owes.
	net := paid.Sub(owed)

	if owed.IsZero() && paid.IsZero() {
		return nil, c.skip(exp, ReasonNoShare)
	}

	// Zero net with nothing paid means someone else covered the user's
	// share entirely. Unreachable while the no-share gate above holds, but
	// kept as an explicit precedence over sign classification.
	if net.IsZero() && paid.IsZero() {
		return nil, c.skip(exp, ReasonSomeoneElsePaid)
	}

	var (
		candType CandidateType
		amount   decimal.Decimal
	)

	switch {
	case net.IsPositive():
		candType = TypeLent
		if owed.IsZero() {
			// User paid the full amount and owes nothing
			amount = paid
		} else {
			amount = total.Sub(owed)
		}
	case net.IsNegative():
		candType = TypeBorrowed
		amount = net.Abs()
	case paid.IsPositive():
		candType = TypePaidOwnShare
		amount = paid
	default:
		// net and paid both zero; the gates above normally catch this
		candType = TypeBalanced
		amount = owed
	}

	if strings.ToLower(strings.TrimSpace(exp.Description)) == paymentDescription {
		return nil, c.skip(exp, ReasonPaymentName)
	}

	currency := exp.CurrencyCode
	if currency == "" {
		currency = defaultCurrency
	}

	category := exp.Category
	if category == "" {
		category = defaultCategory
	}

	description := exp.Description
	if description == "" {
		description = "Unknown expense"
	}

	return &Candidate{
		SplitwiseID:  exp.ID,
		Description:  description,
		Amount:       amount,
		Currency:     currency,
		Date:         exp.Date,
		Category:     category,
		Type:         candType,
		Title:        candType.Title(),
		NetBalance:   net,
		OwedShare:    owed,
		PaidShare:    paid,
		TotalExpense: total,
	}, nil
}

func (c *Classifier) skip(exp RawExpense, reason string) *SkipReason {
	description := exp.Description
	if description == "" {
		description = "Unknown expense"
	}
	return &SkipReason{
		Description: description,
		Date:        exp.Date,
		Reason:      reason,
	}
}

func (c *Classifier) parseErrorSkip(exp RawExpense, err error) *SkipReason {
	return c.skip(exp, "Parse error: "+truncate(err.Error(), maxParseErrorLen))
}

// parseAmount parses a decimal amount, tolerating thousands separators.
// An empty string counts as zero, matching the upstream default.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
