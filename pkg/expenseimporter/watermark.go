package expenseimporter

import "time"

// ShouldUpload reports whether a record dated recordDate is eligible given
// the current watermark. Both sides are truncated to day granularity in UTC,
// so records dated the same day as the watermark are re-checked on every
// run rather than excluded.
func ShouldUpload(recordDate, lastUpload time.Time) bool {
	return !truncateToDay(recordDate).Before(truncateToDay(lastUpload))
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseISODate parses the export's canonical date column, which carries a
// full timestamp in some exports and a bare date in others.
func parseISODate(value string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &ParseError{Field: colDateISO, Value: value}
}
