package weeb

import "fmt"

// NetworkError reports a request that failed after all retry attempts,
// or a transport-level failure that could not be retried further.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParsingError reports a failure to extract structured data from a page.
// It wraps the underlying cause, which may itself be a *NetworkError.
type ParsingError struct {
	URL string
	Err error
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.URL, e.Err)
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}
