// Package normalisers provides implementations of the Normaliser interface.
// A normaliser turns a document read from the provider into the Markdown
// that sinks write out.
package normalisers
