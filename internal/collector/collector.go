// Package collector implements the fact collectors that make up a device
// report. Each collector owns a disjoint set of field names.
package collector

import (
	"context"
	"fmt"

	"nightreport/internal/report"
)

// Collector produces named report fields from local system inspection.
type Collector interface {
	// Name identifies the collector in logs and errors.
	Name() string

	// Critical collectors abort the run when they fail. Non-critical
	// collectors return their fallback fields alongside the error.
	Critical() bool

	// Collect inspects the machine and returns the fields it owns.
	Collect(ctx context.Context) (*report.Body, error)
}

// CollectorError is a non-critical collector failure. The collector's
// fallback fields are still reported.
type CollectorError struct {
	Collector string
	Err       error
}

func (e *CollectorError) Error() string {
	return fmt.Sprintf("collector %s: %v", e.Collector, e.Err)
}

func (e *CollectorError) Unwrap() error { return e.Err }

// CollectorFatalError is a critical collector failure. It aborts the run.
type CollectorFatalError struct {
	Collector string
	Err       error
}

func (e *CollectorFatalError) Error() string {
	return fmt.Sprintf("collector %s: %v", e.Collector, e.Err)
}

func (e *CollectorFatalError) Unwrap() error { return e.Err }

// Run executes c and classifies its error. A critical failure yields a nil
// body and a *CollectorFatalError; a non-critical failure yields the
// collector's fallback body and a *CollectorError.
func Run(ctx context.Context, c Collector) (*report.Body, error) {
	body, err := c.Collect(ctx)
	if err == nil {
		return body, nil
	}
	if c.Critical() {
		return nil, &CollectorFatalError{Collector: c.Name(), Err: err}
	}
	return body, &CollectorError{Collector: c.Name(), Err: err}
}
