// Package cache persists the vendor-to-category mappings the fallback
// classifier has produced, so previously seen vendors are never re-queried.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	applog "spendledger/internal/log"
)

// VendorCache is a JSON object mapping vendor string to category string,
// read wholesale at classification start and written wholesale at the end of
// a run if modified. Concurrent runs are last-writer-wins; that is an
// accepted limitation, not something this type tries to coordinate.
type VendorCache struct {
	path    string
	entries map[string]string
	dirty   bool
	logger  *applog.Logger
}

// Load reads the cache file at path. A missing or unreadable file is treated
// as an empty cache.
func Load(path string, logger *applog.Logger) *VendorCache {
	c := &VendorCache{
		path:    path,
		entries: make(map[string]string),
		logger:  logger.WithComponent(applog.ComponentCache),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.logger.Warn("Vendor cache unreadable, starting empty",
			applog.FieldCachePath, path, applog.FieldError, err)
		c.entries = make(map[string]string)
	}
	return c
}

// Lookup returns the cached category for a vendor.
func (c *VendorCache) Lookup(vendor string) (string, bool) {
	cat, ok := c.entries[vendor]
	return cat, ok
}

// Set stores a vendor mapping and marks the cache dirty.
func (c *VendorCache) Set(vendor, category string) {
	if vendor == "" || category == "" {
		return
	}
	c.entries[vendor] = category
	c.dirty = true
}

// Len returns the number of cached mappings.
func (c *VendorCache) Len() int {
	return len(c.entries)
}

// Flush writes the cache back to disk when it changed. The write is
// best-effort: a failure is logged and swallowed.
func (c *VendorCache) Flush() {
	if !c.dirty {
		return
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		c.logger.Warn("Vendor cache marshal failed", applog.FieldError, err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		c.logger.Warn("Vendor cache directory create failed",
			applog.FieldCachePath, c.path, applog.FieldError, err)
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		c.logger.Warn("Vendor cache write failed",
			applog.FieldCachePath, c.path, applog.FieldError, err)
		return
	}
	c.dirty = false
}
