// Package connectors holds the clients for the external services gdocs2md
// talks to. Each sub-package wraps one API:
//
//   - google, google/drive: reading and exporting Google Docs
//   - github: writing files through the repository contents API
package connectors
