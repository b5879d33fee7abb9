package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhagedorn/scenegraph/pkg/httputil"
)

func ExampleRetry() {
	attempt := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempt++
		if attempt < 2 {
			// Transient failures are wrapped so Retry knows to try again.
			return &httputil.RetryableError{Err: errors.New("rate limited")}
		}
		return nil
	})

	fmt.Println("Attempts:", attempt)
	fmt.Println("Error:", err)
	// Output:
	// Attempts: 2
	// Error: <nil>
}

func ExampleRetry_permanent() {
	attempt := 0
	err := httputil.Retry(context.Background(), 3, time.Millisecond, func() error {
		attempt++
		// Plain errors count as permanent and stop immediately.
		return errors.New("invalid API key")
	})

	fmt.Println("Attempts:", attempt)
	fmt.Println("Error:", err)
	// Output:
	// Attempts: 1
	// Error: invalid API key
}
