// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Lists documents from the document provider (Google Drive)
//   - Normaliser: Turns a document into Markdown with front-matter
//   - MarkdownWriter: Writes converted Markdown to a sink (filesystem, GitHub)
//   - ConfigStore: Reads the TOML project file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
