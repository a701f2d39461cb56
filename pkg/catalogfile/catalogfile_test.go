package catalogfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winhouse-quote/internal/catalog"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, Save(Export(catalog.Default(), now), path))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, "2024-12-01T00:00:00Z", f.LastUpdated)

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, c.Industries(), len(catalog.Default().Industries()))

	m, ok := c.Module("property-listing")
	require.True(t, ok)
	assert.Equal(t, int64(12_000_000), m.BasePrice)
	assert.Equal(t, []string{"luxury", "minimalist", "corporate"}, f.Recommendations["real-estate"])
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(dir, "absent.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"modules":`), 0644))
		_, err := LoadCatalog(path)
		assert.ErrorContains(t, err, "failed to parse catalog file")
	})

	t.Run("empty catalog", func(t *testing.T) {
		path := filepath.Join(dir, "empty.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0644))
		_, err := LoadCatalog(path)
		assert.ErrorContains(t, err, "no industries")
	})

	t.Run("dangling industry", func(t *testing.T) {
		f := Export(catalog.Default(), time.Now())
		f.Modules[0].IndustryIDs = []string{"mars"}
		path := filepath.Join(dir, "dangling.json")
		require.NoError(t, Save(f, path))

		_, err := LoadCatalog(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, catalog.ErrUnknownIndustry))
	})
}
