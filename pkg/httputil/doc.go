// Package httputil provides retry support for remote calls.
//
// # Overview
//
// The describe layer talks to a hosted generative model; transient
// failures there (network errors, 5xx responses, rate limits) should
// be retried, while schema and auth failures should not. [Retry]
// makes that split explicit: only errors wrapped in [RetryableError]
// are attempted again.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    out, err := client.Describe(ctx, img)
//	    if isTransient(err) {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    return err
//	})
//
// The core pipeline never retries; see the error-handling notes in
// pkg/errors. Response caching lives in pkg/cache, keyed per pipeline
// stage, so a retried call that eventually succeeds is cached like any
// other.
//
// # Defaults
//
// [RetryWithBackoff] uses 3 attempts with a 1 second initial delay,
// doubling after each failure.
package httputil
