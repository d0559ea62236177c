// Package history looks up when a file last changed in version control.
package history

import (
	"context"
	"time"
)

// Lookup reports the last change time of a file.
// Implementations never fail the caller; problems are reported as Unavailable.
type Lookup interface {
	LastChange(ctx context.Context, path string) Result
}

// Result is either a found timestamp or an unavailable reason.
type Result struct {
	time   time.Time
	reason string
	found  bool
}

// Found returns a Result carrying t.
func Found(t time.Time) Result {
	return Result{time: t, found: true}
}

// Unavailable returns a Result explaining why no timestamp exists.
func Unavailable(reason string) Result {
	return Result{reason: reason}
}

// Time returns the timestamp and whether it was found.
func (r Result) Time() (time.Time, bool) {
	return r.time, r.found
}

// Reason explains an unavailable result. Empty for found results.
func (r Result) Reason() string {
	return r.reason
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, path string) Result

// LastChange calls f(ctx, path).
func (f LookupFunc) LastChange(ctx context.Context, path string) Result {
	return f(ctx, path)
}
