package importer

import "time"

const calendarDateLayout = "2006-01-02"

// DateRange is an optional inclusive calendar-date window. A nil bound
// leaves that side unconstrained.
type DateRange struct {
	Start *time.Time // start of day, 00:00:00
	End   *time.Time // end of day, 23:59:59.999999999
}

// ParseDateRange validates and parses optional YYYY-MM-DD bounds. Bound
// validation happens once, before any record is filtered.
func ParseDateRange(startDate, endDate string) (DateRange, error) {
	var r DateRange

	if startDate != "" {
		t, err := time.Parse(calendarDateLayout, startDate)
		if err != nil {
			return DateRange{}, &InvalidRangeError{Bound: "start_date", Value: startDate}
		}
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		r.Start = &start
	}

	if endDate != "" {
		t, err := time.Parse(calendarDateLayout, endDate)
		if err != nil {
			return DateRange{}, &InvalidRangeError{Bound: "end_date", Value: endDate}
		}
		end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
		r.End = &end
	}

	return r, nil
}

// IsZero reports whether neither bound is set
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t falls within the window
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// expense date layouts tried by normalizeExpenseDate, in order
var expenseDateLayouts = []string{
	time.RFC3339,          // full timestamp with offset; offset is discarded
	"2006-01-02T15:04:05", // naive timestamp
}

// normalizeExpenseDate parses an upstream date string into a local-naive
// comparison value. Timezone offsets are deliberately stripped rather than
// converted: the upstream feed mixes aware, naive and date-only encodings,
// and the filter compares wall-clock values. First strategy to succeed wins;
// ok is false when every strategy fails.
func normalizeExpenseDate(s string) (time.Time, bool) {
	for _, layout := range expenseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return stripZone(t), true
		}
	}

	// Last resort: the first 10 characters as a plain calendar date
	if len(s) >= 10 {
		if t, err := time.Parse(calendarDateLayout, s[:10]); err == nil {
			return stripZone(t), true
		}
	}

	return time.Time{}, false
}

// stripZone keeps the wall-clock components and drops the zone
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// filterByRange retains expenses whose normalized date falls within r.
// Records with no date or an unparseable date are dropped silently; they
// still count toward the fetched total but are not surfaced as errors.
func filterByRange(expenses []RawExpense, r DateRange) []RawExpense {
	if r.IsZero() {
		return expenses
	}

	filtered := make([]RawExpense, 0, len(expenses))
	for _, exp := range expenses {
		if exp.Date == "" {
			continue
		}
		t, ok := normalizeExpenseDate(exp.Date)
		if !ok {
			continue
		}
		if r.Contains(t) {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}
