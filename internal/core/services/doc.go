// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ConvertService is the only service: it pulls documents from a
// DocumentSource, normalises them to Markdown and hands each result
// to every configured MarkdownWriter.
package services
