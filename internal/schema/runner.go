package schema

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/kapil1024/Redfish-Service-Validator/internal/payload"
)

// ErrStopValidation is a sentinel error used to signal that further
// validation should be stopped and the report shown.
var ErrStopValidation = errors.New("stopping after first failure")

// Runner is the type used to manage a validation run over one or more
// payload documents.
type Runner struct {
	catalog *Catalog

	// Validation run options
	strict           bool
	stopOnFirstError bool
	numWorkers       int
	typeOverride     string

	report *ValidationReport
}

// NewRunner creates a new runner for the given catalog.
func NewRunner(c *Catalog) *Runner {
	return &Runner{
		catalog:    c,
		report:     NewValidationReport(),
		strict:     true,
		numWorkers: runtime.GOMAXPROCS(0),
	}
}

// SetStrict controls whether payload values that cannot be read as their
// declared types fail their cases. It defaults to true. If false, values are
// recorded as-is and only unresolvable types are reported.
func (r *Runner) SetStrict(b bool) {
	r.strict = b
}

// SetStopOnFirstError controls whether the run should stop on the first
// failed case. It defaults to false, meaning every targeted payload is
// validated and compiled into the report.
func (r *Runner) SetStopOnFirstError(b bool) {
	r.stopOnFirstError = b
}

// SetNumWorkers controls the number of workers used to validate payloads in
// parallel. It defaults to a sensible default. Only use this if you want to
// manually control the number of workers.
func (r *Runner) SetNumWorkers(n int) {
	r.numWorkers = n
}

// SetTypeOverride forces every payload to validate against the given type
// instead of its own @odata.type annotation.
func (r *Runner) SetTypeOverride(name string) {
	r.typeOverride = name
}

// ValidateSingle validates one payload file against the catalog.
// The context can be used to cancel the run early (e.g., on Ctrl+C).
func (r *Runner) ValidateSingle(ctx context.Context, path string) (*ValidationReport, error) {
	r.report.StartTime = time.Now()
	defer func() { r.report.EndTime = time.Now() }()

	src, err := payload.Read(path)
	if err != nil {
		return nil, err
	}

	if err := r.validateSource(ctx, src); err != nil && !errors.Is(err, ErrStopValidation) {
		return nil, err
	}

	return r.report, nil
}

// ValidateTree walks a directory of payload documents and validates each one.
// Validation runs in parallel. Use SetNumWorkers to control the number of
// workers. The context can be used to cancel the run early (e.g., on Ctrl+C).
func (r *Runner) ValidateTree(ctx context.Context, root string) (*ValidationReport, error) {
	r.report.StartTime = time.Now()
	defer func() { r.report.EndTime = time.Now() }()

	// Create a sub-context to allow us to cancel workers/producer early
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	resultC := payload.Walk(runCtx, root)

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.numWorkers)

	var finalErr error
	var errOnce sync.Once

Loop:
	for res := range resultC {
		// Handle filesystem traversal errors
		if res.Err != nil {
			errOnce.Do(func() {
				finalErr = res.Err
				cancelRun()
			})
			break Loop
		}

		// Before acquiring a worker slot, check if we've been told to stop
		select {
		case <-runCtx.Done():
			break Loop
		case sem <- struct{}{}: // Acquire worker slot
		}

		wg.Add(1)
		go func(src payload.Source) {
			defer wg.Done()
			defer func() { <-sem }() // Release slot when finished

			if vErr := r.validateSource(runCtx, src); vErr != nil {
				errOnce.Do(func() {
					if !errors.Is(vErr, ErrStopValidation) {
						finalErr = vErr
					}
					cancelRun() // Signal producer and other workers to stop
				})
			}
		}(res.Source)
	}

	// Wait for all workers currently in flight to finish
	wg.Wait()

	// If ctx was cancelled by the caller (not by stopOnFirstError), prioritise returning that error.
	if ctx.Err() != nil {
		return r.report, ctx.Err()
	}

	if finalErr != nil {
		return r.report, finalErr
	}

	return r.report, nil
}

// validateSource builds and runs the case for one payload source. A payload
// problem is added to the report rather than returned; the function only
// returns an error for context cancellation, or ErrStopValidation when
// stopOnFirstError is set and the case failed.
func (r *Runner) validateSource(ctx context.Context, src payload.Source) error {
	if ce := ctx.Err(); ce != nil {
		return ce
	}

	c, err := r.newCase(src)
	if err != nil {
		c.Err = err
	} else {
		_ = c.Run(r.catalog, r.strict)
	}

	r.report.AddLinks(c.Links)

	if c.Err != nil {
		r.report.AddFailedCase(&c)
		if r.stopOnFirstError {
			// Signal to the producer to stop other validation activity
			return ErrStopValidation
		}
		return nil
	}

	r.report.AddPassedCase(&c)
	return nil
}

// newCase decodes a payload source and determines the type to validate it
// against: the run's override if set, otherwise the payload's own
// @odata.type annotation.
func (r *Runner) newCase(src payload.Source) (Case, error) {
	v, err := DecodeValue(src.Data)
	if err != nil {
		return Case{Path: src.Path}, err
	}

	name := r.typeOverride
	if name == "" {
		name = src.OdataType
	}
	if name == "" {
		return Case{Path: src.Path, Payload: v}, &NoTypeForPayloadError{Path: src.Path}
	}

	return NewCase(src.Path, NewTypeName(name), v), nil
}
