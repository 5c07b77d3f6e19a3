package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CatalogJSON is a small catalogue document covering every routine group
const CatalogJSON = `{
  "products": [
    {"id": 1, "brand": "CeraVe", "name": "Foaming Facial Cleanser", "category": "cleanser", "description": "Gentle foaming cleanser that removes oil", "image": "https://example.com/1.jpg"},
    {"id": 2, "brand": "CeraVe", "name": "Daily Moisturizing Lotion", "category": "moisturizer", "description": "Lightweight lotion with ceramides", "image": "https://example.com/2.jpg"},
    {"id": 3, "brand": "L'Oréal Paris", "name": "Voluminous Lash Paradise", "category": "makeup", "description": "Volumizing mascara", "image": "https://example.com/3.jpg"},
    {"id": 4, "brand": "L'Oréal Paris", "name": "Elvive Total Repair Shampoo", "category": "haircare", "description": "Shampoo for damaged hair", "image": "https://example.com/4.jpg"},
    {"id": 5, "brand": "La Roche-Posay", "name": "Anthelios Melt-in Milk", "category": "suncare", "description": "Broad spectrum SPF 60 sunscreen", "image": "https://example.com/5.jpg"},
    {"id": 6, "brand": "L'Oréal Paris", "name": "Revitalift Vitamin C Serum", "category": "skincare", "description": "Brightening serum", "image": "https://example.com/6.jpg"},
    {"id": 7, "brand": "L'Oréal Paris", "name": "Elnett Satin Hairspray", "category": "hair styling", "description": "Flexible hold hairspray", "image": "https://example.com/7.jpg"},
    {"id": 8, "brand": "Yves Saint Laurent", "name": "Libre Eau de Parfum", "category": "fragrance", "description": "Floral perfume", "image": "https://example.com/8.jpg"},
    {"id": 9, "sku": "LRP-CICA", "brand": "La Roche-Posay", "name": "Cicaplast Baume B5", "category": "moisturizer", "description": "Soothing balm cream"}
  ]
}`

// WriteCatalogFixture writes CatalogJSON to dir/products.json and returns its path
func WriteCatalogFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "products.json")
	if err := os.WriteFile(path, []byte(CatalogJSON), 0644); err != nil {
		t.Fatalf("Failed to write catalogue fixture: %v", err)
	}
	return path
}

// CreateSQLiteFixture creates a state database file with a stored selection
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to create SQLite fixture: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(createStateTableSQL); err != nil {
		t.Fatalf("Failed to create session_state table: %v", err)
	}
	InsertState(t, db, "selected_products_v1", `["1","5"]`)
}

// CreateCacheFixture writes a file into the cache directory
func CreateCacheFixture(t *testing.T, cachePath string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		t.Fatalf("Failed to create cache directory: %v", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.Fatalf("Failed to write cache fixture: %v", err)
	}
}
