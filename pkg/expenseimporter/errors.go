package expenseimporter

import "fmt"

// ParseError reports a malformed field in a single row. It is scoped to the
// record it belongs to and never aborts the run.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s %q: %v", e.Field, e.Value, e.Err)
	}

	return fmt.Sprintf("failed to parse %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UpsertError reports a failed storage operation for one entity. Dependent
// work for that entity is skipped; independent entities are still attempted.
type UpsertError struct {
	Entity string
	Err    error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("error upserting %s: %v", e.Entity, e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }

// WatermarkError reports a failure reading or writing the uploads watermark.
// A read failure is treated as "no watermark"; a write failure leaves the
// stored watermark stale but does not fail the run.
type WatermarkError struct {
	Op  string
	Err error
}

func (e *WatermarkError) Error() string {
	return fmt.Sprintf("error on watermark %s: %v", e.Op, e.Err)
}

func (e *WatermarkError) Unwrap() error { return e.Err }
