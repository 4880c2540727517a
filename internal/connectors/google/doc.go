// Package google provides shared infrastructure for the Google Drive source.
//
// It contains:
//   - token sources built from a credentials file or a raw access token
//   - the Drive service factory
//   - error handling for common Google API errors (401, 403, 404, 429)
//   - rate limiting to respect Drive API quotas
//
// # Usage
//
//	ts, err := google.NewTokenSource(ctx, google.Credentials{File: path})
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// Only https://www.googleapis.com/auth/drive.readonly is requested.
// Service account keys need the folder shared with the account email.
package google
