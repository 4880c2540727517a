package domain

import "fmt"

// Committer identifies who commits a remote write.
type Committer struct {
	Name  string
	Email string
}

// WriteRequest is a single remote file write. It is never persisted.
type WriteRequest struct {
	Owner     string
	Repo      string
	Path      string
	Branch    string
	Content   string
	Committer Committer
	Message   string
}

// Validate checks the request carries full target coordinates.
func (r WriteRequest) Validate() error {
	switch {
	case r.Owner == "":
		return fmt.Errorf("%w: owner is required", ErrInvalidInput)
	case r.Repo == "":
		return fmt.Errorf("%w: repo is required", ErrInvalidInput)
	case r.Path == "":
		return fmt.Errorf("%w: path is required", ErrInvalidInput)
	case r.Branch == "":
		return fmt.Errorf("%w: branch is required", ErrInvalidInput)
	}
	return nil
}

// RemoteFile is the state of an existing remote file.
type RemoteFile struct {
	// SHA is the identity token required to update the file.
	SHA string
	// Content is the decoded file content.
	Content string
	// Large is set when the API omitted the content (files over 1 MB).
	// Content is then empty and must not be compared.
	Large bool
}

// LookupStatus tags the outcome of a remote file lookup.
type LookupStatus int

const (
	// LookupNotFound means the file does not exist on the branch.
	LookupNotFound LookupStatus = iota
	// LookupFound means the file exists; File carries its state.
	LookupFound
	// LookupTransient means the lookup failed for a reason worth retrying.
	LookupTransient
	// LookupFailed means the lookup failed for good (auth, permissions, bad input).
	LookupFailed
)

// String returns the status name.
func (s LookupStatus) String() string {
	switch s {
	case LookupNotFound:
		return "not_found"
	case LookupFound:
		return "found"
	case LookupTransient:
		return "transient"
	case LookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LookupOutcome is the tagged result of a remote file lookup.
// File is set for LookupFound, Err for LookupTransient and LookupFailed.
type LookupOutcome struct {
	Status LookupStatus
	File   *RemoteFile
	Err    error
}

// WriteAction describes what a sink did with a document.
type WriteAction string

const (
	// ActionCreated means a new file was created.
	ActionCreated WriteAction = "created"
	// ActionUpdated means an existing file was replaced.
	ActionUpdated WriteAction = "updated"
	// ActionUnchanged means the existing content already matched.
	ActionUnchanged WriteAction = "unchanged"
)

// WriteResult describes a completed write.
type WriteResult struct {
	Action WriteAction
	Path   string
	Branch string

	// SHA is the content identity token after the write, when known.
	SHA string

	// CommitSHA is the commit created by the write, when known.
	CommitSHA string

	// URL points at the written file, when known.
	URL string
}
