package api

import "fmt"

// FetchError indicates the remote API was unreachable or returned a
// malformed response while listing pull requests or reviews.
type FetchError struct {
	Repository string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch pull requests for %s: %v", e.Repository, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// MergeError indicates a specific pull request could not be merged,
// e.g. because of a conflicting state.
type MergeError struct {
	Repository string
	Number     int
	Err        error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("failed to merge %s#%d: %v", e.Repository, e.Number, e.Err)
}

// Unwrap returns the underlying error.
func (e *MergeError) Unwrap() error {
	return e.Err
}
