// pkg/catalogfile/schema.go
package catalogfile

import "winhouse-quote/internal/catalog"

// File is the on-disk catalog: industries, budgets, modules, styles and
// style recommendations, plus version metadata.
type File struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	catalog.Data
}
