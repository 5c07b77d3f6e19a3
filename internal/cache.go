package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const catalogCacheVersion = "1.0"

// CatalogCache keeps the last fetched catalogue on disk so a known catalogue can be
// served when its source is unreachable
type CatalogCache struct {
	cacheDir string
}

// SnapshotMetadata describes the cached catalogue
type SnapshotMetadata struct {
	Source       string    `json:"source" yaml:"source"`
	FetchedAt    time.Time `json:"fetched_at" yaml:"fetched_at"`
	ProductCount int       `json:"product_count" yaml:"product_count"`
	CacheVersion string    `json:"cache_version" yaml:"cache_version"`
}

// CatalogSnapshot is a cached catalogue with its metadata
type CatalogSnapshot struct {
	Metadata SnapshotMetadata
	Products []Product
}

// NewCatalogCache creates a cache rooted at cacheDir
func NewCatalogCache(cacheDir string) *CatalogCache {
	return &CatalogCache{cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists
func (cc *CatalogCache) EnsureCacheDir() error {
	return os.MkdirAll(cc.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path
func (cc *CatalogCache) GetCacheDir() string {
	return cc.cacheDir
}

// GetIndexPath returns the path of the YAML metadata index
func (cc *CatalogCache) GetIndexPath() string {
	return filepath.Join(cc.cacheDir, "catalog.yaml")
}

// GetProductsPath returns the path of the cached products
func (cc *CatalogCache) GetProductsPath() string {
	return filepath.Join(cc.cacheDir, "catalog.json")
}

// LoadMetadata loads the snapshot index
func (cc *CatalogCache) LoadMetadata() (*SnapshotMetadata, error) {
	data, err := os.ReadFile(cc.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var meta SnapshotMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot index: %w", err)
	}
	return &meta, nil
}

// IsSnapshotValid reports whether a snapshot for source exists and was written by this version
func (cc *CatalogCache) IsSnapshotValid(source string) bool {
	meta, err := cc.LoadMetadata()
	if err != nil {
		return false
	}
	if meta.Source != source || meta.CacheVersion != catalogCacheVersion {
		return false
	}
	if _, err := os.Stat(cc.GetProductsPath()); err != nil {
		return false
	}
	return true
}

// SaveSnapshot writes products and the index for source
func (cc *CatalogCache) SaveSnapshot(source string, products []Product) error {
	if err := cc.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	if err := os.WriteFile(cc.GetProductsPath(), data, 0644); err != nil {
		return err
	}

	meta := SnapshotMetadata{
		Source:       source,
		FetchedAt:    time.Now(),
		ProductCount: len(products),
		CacheVersion: catalogCacheVersion,
	}
	index, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot index: %w", err)
	}
	return os.WriteFile(cc.GetIndexPath(), index, 0644)
}

// LoadSnapshot loads the snapshot for source
func (cc *CatalogCache) LoadSnapshot(source string) (*CatalogSnapshot, error) {
	if !cc.IsSnapshotValid(source) {
		return nil, fmt.Errorf("no valid snapshot for %s", source)
	}
	meta, err := cc.LoadMetadata()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cc.GetProductsPath())
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &CatalogSnapshot{Metadata: *meta, Products: products}, nil
}

// ClearCache removes the snapshot files
func (cc *CatalogCache) ClearCache() error {
	for _, path := range []string{cc.GetProductsPath(), cc.GetIndexPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
