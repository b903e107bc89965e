package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "spendledger/internal/log"
)

func testLogger() *applog.Logger {
	return applog.New(applog.DefaultConfig())
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "nope.json"), testLogger())
	assert.Equal(t, 0, c.Len())

	_, ok := c.Lookup("anything")
	assert.False(t, ok)
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	c := Load(path, testLogger())
	assert.Equal(t, 0, c.Len())
}

func TestSetFlushLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")

	c := Load(path, testLogger())
	c.Set("Quantum Widgets", "shopping")
	c.Set("Corner Bakery", "food")
	c.Flush()

	c2 := Load(path, testLogger())
	require.Equal(t, 2, c2.Len())

	cat, ok := c2.Lookup("Quantum Widgets")
	assert.True(t, ok)
	assert.Equal(t, "shopping", cat)
}

func TestSetIgnoresEmptyKeysAndValues(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "cache.json"), testLogger())
	c.Set("", "food")
	c.Set("vendor", "")
	assert.Equal(t, 0, c.Len())
}

func TestFlushSkipsCleanCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := Load(path, testLogger())
	c.Flush()

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clean cache must not be written")
}
