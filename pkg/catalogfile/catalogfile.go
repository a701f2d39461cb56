// pkg/catalogfile/catalogfile.go
package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"winhouse-quote/internal/catalog"
)

const CurrentVersion = "1.0.0"

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return &f, nil
}

// Save writes f as indented JSON, creating the directory if needed.
func Save(f *File, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Export wraps a catalog for saving.
func Export(c *catalog.Catalog, now time.Time) *File {
	return &File{
		Version:     CurrentVersion,
		LastUpdated: now.UTC().Format(time.RFC3339),
		Data:        c.Data(),
	}
}

// Catalog validates the file contents and builds the catalog.
func (f *File) Catalog() (*catalog.Catalog, error) {
	if len(f.Industries) == 0 {
		return nil, fmt.Errorf("catalog contains no industries")
	}
	if len(f.Modules) == 0 {
		return nil, fmt.Errorf("catalog contains no modules")
	}
	return catalog.New(f.Data)
}

// LoadCatalog reads and validates a catalog override file.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	c, err := f.Catalog()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return c, nil
}
