// Package github writes converted Markdown to GitHub repositories through
// the repository contents API.
//
// # Architecture
//
//   - Client: wraps go-github with rate limiting and error mapping
//   - Writer: the create-or-update flow for a single file
//   - MarkdownWriter: the driven.MarkdownWriter sink; resolves the commit
//     branch from the document phase and delegates to Writer
//
// # Authentication
//
// Personal access tokens (classic or fine-grained) and OAuth access tokens
// both work. The token needs write access to repository contents.
//
// # Write Flow
//
// For every write the Writer:
//
//  1. looks the file up on the target branch (GET /repos/{owner}/{repo}/contents/{path}?ref={branch})
//  2. classifies the lookup: not found, found (with its blob SHA), transient
//     failure or permanent failure
//  3. retries transient failures with a doubling delay, and gives up with an
//     error instead of guessing that the file is missing
//  4. creates the file, or updates it passing the SHA it read
//
// By default a timestamp is appended to the content so that every write
// produces a new commit. WithForceCommit(false) turns that off and skips
// writes whose content is already up to date.
//
// # Rate Limiting
//
// A token bucket limits requests to about 1.2 per second. The client also
// reads X-RateLimit-Remaining and X-RateLimit-Reset and waits for the reset
// once fewer than 100 requests remain.
//
// # Error Handling
//
//   - 404 on lookup: the file does not exist yet
//   - 409 on update, 422 on create: domain.ErrConflict
//   - rate limits, 5xx and network errors: transient
//   - anything else: returned as is
//
// # Example Usage
//
//	client := github.NewClientWithToken(ctx, token)
//	w := github.NewWriter(client)
//	res, err := w.Write(ctx, domain.WriteRequest{
//	    Owner: "octo", Repo: "site", Path: "docs/intro.md", Branch: "main",
//	    Content: md, Message: "docs: sync intro",
//	})
package github
