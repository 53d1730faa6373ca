package importer

import (
	"context"

	"github.com/google/uuid"
)

// ExpenseSource provides access to the user's expenses on Splitwise.
// Implementations translate their failures into the importer error taxonomy:
// AuthError, UpstreamError, TransportError.
type ExpenseSource interface {
	// CurrentUserID resolves the caller's own Splitwise user id.
	CurrentUserID(ctx context.Context, apiKey string) (int64, error)

	// Expenses fetches a single page of expenses. A page shorter than limit
	// (or empty) signals end-of-data.
	Expenses(ctx context.Context, apiKey string, limit, offset int) ([]RawExpense, error)
}

// TransactionStore is the read-only view of local storage the pipeline needs
// for duplicate detection. The pipeline never writes.
type TransactionStore interface {
	// ExistsBySplitwiseID reports whether the user already has a stored
	// expense imported from the given Splitwise record.
	ExistsBySplitwiseID(ctx context.Context, userID uuid.UUID, splitwiseID string) (bool, error)
}
