// Package domain defines the core entities for gdocs2md.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a Google Doc as read from Drive, with its metadata
//   - MarkdownDocument: the converted Markdown ready to be written
//   - BranchMapping: phase name to branch resolution for commits
//   - WriteRequest / WriteResult: the remote file write contract
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
