/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/google/arith/core/expr"
)

// Options configures Run
type Options struct {
	// Parallelism bounds how many cases are evaluated at once (default: GOMAXPROCS).
	Parallelism int
	// Tolerance is the relative error accepted for cases without their own.
	Tolerance float64
}

// DefaultOptions returns default run options
func DefaultOptions() Options {
	return Options{
		Parallelism: runtime.GOMAXPROCS(0),
		Tolerance:   DefaultTolerance,
	}
}

// Result is the outcome of one case.
type Result struct {
	Case Case
	Got  float64
	// Err is the evaluation error, if any. It may be expected.
	Err    error
	Pass   bool
	Reason string
}

// Report holds results in the order the cases were given.
type Report struct {
	Results []Result
}

// Run evaluates every case. Each evaluation owns its parser, so cases run
// concurrently.
func Run(ctx context.Context, cases []Case, opts Options) (*Report, error) {
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	results := make([]Result, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallelism)
	for i, c := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = check(c, opts.Tolerance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Report{Results: results}, nil
}

func check(c Case, tolerance float64) Result {
	if c.Tolerance > 0 {
		tolerance = c.Tolerance
	}

	r := Result{Case: c}
	r.Got, r.Err = expr.Evaluate(c.Expression)

	if c.WantError != "" {
		var e *expr.Error
		switch {
		case r.Err == nil:
			r.Reason = fmt.Sprintf("got %g, want error %s", r.Got, c.WantError)
		case !errors.As(r.Err, &e):
			r.Reason = fmt.Sprintf("got error %v, want error %s", r.Err, c.WantError)
		case e.Kind.String() != c.WantError:
			r.Reason = fmt.Sprintf("got error %s, want error %s", e.Kind, c.WantError)
		default:
			r.Pass = true
		}
		return r
	}

	if r.Err != nil {
		r.Reason = fmt.Sprintf("got error %v, want %g", r.Err, c.Want)
		return r
	}
	if !withinTolerance(r.Got, c.Want, tolerance) {
		r.Reason = fmt.Sprintf("got %g, want %g (tolerance %g)", r.Got, c.Want, tolerance)
		return r
	}
	r.Pass = true
	return r
}

// withinTolerance compares relative to want, or absolutely when want is 0.
func withinTolerance(got, want, tolerance float64) bool {
	if want == 0 {
		return math.Abs(got) <= tolerance
	}
	return math.Abs(got-want) <= tolerance*math.Abs(want)
}

// Passed returns the number of passing cases.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Pass {
			n++
		}
	}
	return n
}

// Failed returns the failing results.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Pass {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err folds every failing case into one error, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, res := range r.Failed() {
		result = multierror.Append(result, fmt.Errorf("%s: %q: %s", res.Case.Name, res.Case.Expression, res.Reason))
	}
	return result.ErrorOrNil()
}
