package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avolkoff/moneymap/pkg/logger"
)

const (
	// pageSize is the fixed Splitwise page size; pages must be fetched
	// sequentially because termination depends on the size of the page
	// just received.
	pageSize = 100

	// maxSkipReasons bounds the skip list in the response
	maxSkipReasons = 50
)

// Request is the optional date window for one import run
type Request struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Service runs the import reconciliation pipeline: fetch, range-filter,
// classify, dedup, aggregate. One call handles one import request
// synchronously; nothing is written to storage.
type Service struct {
	source     ExpenseSource
	store      TransactionStore
	classifier *Classifier
	logger     *logger.Logger
}

// NewService creates a new import service
func NewService(source ExpenseSource, store TransactionStore, log *logger.Logger) *Service {
	return &Service{
		source:     source,
		store:      store,
		classifier: NewClassifier(),
		logger:     log.WithField("service", "importer"),
	}
}

// Import fetches the user's full Splitwise expense history and returns the
// candidates for review. Terminal failures (auth, upstream, transport,
// invalid range) abort the whole import; per-record problems become skip
// entries instead.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, apiKey string, req Request) (*Result, error) {
	dateRange, err := ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	splitwiseUserID, err := s.source.CurrentUserID(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve splitwise user: %w", err)
	}

	fetched, err := s.fetchAll(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	if len(fetched) == 0 {
		return emptyResult("No expenses found in your Splitwise account."), nil
	}

	expenses := filterByRange(fetched, dateRange)
	if len(expenses) == 0 {
		return emptyResult("No expenses found in the selected date range."), nil
	}

	candidates := make([]Candidate, 0, len(expenses))
	skippedReasons := make([]SkipReason, 0)
	skipped := 0

	for _, exp := range expenses {
		cand, skip := s.classifyRecord(exp, splitwiseUserID)
		if skip != nil {
			skipped++
			// Non-participants are counted but not worth showing
			if skip.Reason != ReasonNotParticipant {
				skippedReasons = append(skippedReasons, *skip)
			}
			continue
		}

		exists, err := s.store.ExistsBySplitwiseID(ctx, userID, cand.SplitwiseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing expense: %w", err)
		}
		if exists {
			// Duplicates are returned for display and counted as skipped
			cand.AlreadyImported = true
			skipped++
		}

		candidates = append(candidates, *cand)
	}

	if len(skippedReasons) > maxSkipReasons {
		skippedReasons = skippedReasons[:maxSkipReasons]
	}

	s.logger.Info("import completed",
		"user_id", userID,
		"total_fetched", len(expenses),
		"candidates", len(candidates),
		"skipped", skipped)

	return &Result{
		Message:         fmt.Sprintf("Found %d expenses. %d expenses skipped (duplicates or invalid).", len(candidates), skipped),
		Expenses:        candidates,
		Count:           len(candidates),
		Skipped:         skipped,
		TotalFetched:    len(expenses),
		SkippedExpenses: skippedReasons,
	}, nil
}

// fetchAll pages through the expense feed at increasing offsets until a
// short or empty page signals end-of-data.
func (s *Service) fetchAll(ctx context.Context, apiKey string) ([]RawExpense, error) {
	var all []RawExpense

	for offset := 0; ; offset += pageSize {
		page, err := s.source.Expenses(ctx, apiKey, pageSize, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) < pageSize {
			break
		}
	}

	s.logger.Debug("expenses fetched", "count", len(all))
	return all, nil
}

// classifyRecord classifies one expense, converting a panic while processing
// a single record into a parse-error skip so one bad record never aborts the
// batch.
func (s *Service) classifyRecord(exp RawExpense, splitwiseUserID int64) (cand *Candidate, skip *SkipReason) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("panic while classifying expense", "splitwise_id", exp.ID, "panic", r)
			cand = nil
			skip = s.classifier.parseErrorSkip(exp, fmt.Errorf("%v", r))
		}
	}()

	return s.classifier.Classify(exp, splitwiseUserID)
}

func emptyResult(message string) *Result {
	return &Result{
		Message:         message,
		Expenses:        []Candidate{},
		SkippedExpenses: []SkipReason{},
	}
}
