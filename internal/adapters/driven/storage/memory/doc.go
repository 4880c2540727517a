// Package memory provides in-memory implementations of driven ports.
package memory
