package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates the remote file changed between lookup and write.
	ErrConflict = errors.New("conflict")

	// ErrNoDefaultBranch indicates the branch mapping has no default entry
	// and the phase did not match any other entry.
	ErrNoDefaultBranch = errors.New("branch mapping has no default entry")

	// ErrAuthRequired indicates credentials are needed but none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoSink indicates a conversion was requested without any output.
	ErrNoSink = errors.New("no output configured")

	// ErrDuplicatePath indicates two documents in one run map to the same output path.
	ErrDuplicatePath = errors.New("duplicate output path")
)
