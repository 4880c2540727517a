// Package drive exports the Google Docs of a Drive folder as Markdown documents.
package drive

import (
	"fmt"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// Defaults for Config.
const (
	DefaultPageSize = 100
	// DefaultMaxExportSize is Drive's own export limit (10MB).
	DefaultMaxExportSize = 10 * 1024 * 1024
)

// Config holds Google Drive source configuration.
type Config struct {
	// FolderID is the Drive folder whose documents are converted.
	FolderID string
	// Recursive descends into sub-folders.
	Recursive bool
	// PageSize is the page size for files.list requests.
	PageSize int64
	// MaxExportSize caps the exported Markdown of a single document.
	MaxExportSize int64
}

// DefaultConfig returns the default configuration for folderID.
func DefaultConfig(folderID string) Config {
	return Config{
		FolderID:      folderID,
		Recursive:     true,
		PageSize:      DefaultPageSize,
		MaxExportSize: DefaultMaxExportSize,
	}
}

// Validate checks the configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.FolderID == "" {
		return fmt.Errorf("%w: drive folder ID is required", domain.ErrInvalidInput)
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MaxExportSize <= 0 {
		c.MaxExportSize = DefaultMaxExportSize
	}
	return nil
}
