package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
)

// CatalogSource fetches the raw catalogue document
type CatalogSource interface {
	Fetch(ctx context.Context) ([]byte, error)
	Location() string
}

// NewSource returns an HTTPSource for http(s) locations and a FileSource otherwise
func NewSource(location string) CatalogSource {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &HTTPSource{URL: location}
	}
	return &FileSource{Path: location}
}

// FileSource reads the catalogue from a local file
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s *FileSource) Location() string {
	return s.Path
}

// HTTPSource downloads the catalogue with a GET request
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (s *HTTPSource) Location() string {
	return s.URL
}

// Catalog loads the product list once and serves it read-only afterwards
type Catalog struct {
	source CatalogSource
	cache  *CatalogCache

	mu         sync.Mutex
	products   []Product
	loaded     bool
	generation int
}

// NewCatalog creates a catalogue over source. cache may be nil.
func NewCatalog(source CatalogSource, cache *CatalogCache) *Catalog {
	return &Catalog{source: source, cache: cache}
}

// NewStaticCatalog creates an already loaded catalogue
func NewStaticCatalog(products []Product) *Catalog {
	return &Catalog{
		source:     &staticSource{},
		products:   products,
		loaded:     true,
		generation: 1,
	}
}

type staticSource struct{}

func (staticSource) Fetch(context.Context) ([]byte, error) {
	return nil, fmt.Errorf("static catalogue cannot be fetched")
}

func (staticSource) Location() string {
	return "static"
}

// Source returns the catalogue location
func (c *Catalog) Source() string {
	return c.source.Location()
}

// Load returns the products, fetching them on first use. A successful result is
// memoized and never refreshed implicitly.
func (c *Catalog) Load(ctx context.Context) ([]Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.products, nil
	}
	return c.fetchLocked(ctx)
}

// Reload discards the memoized products and fetches them again
func (c *Catalog) Reload(ctx context.Context) ([]Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.source.(*staticSource); ok {
		return c.products, nil
	}
	return c.fetchLocked(ctx)
}

// Generation increases every time a new product list is installed
func (c *Catalog) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Catalog) fetchLocked(ctx context.Context) ([]Product, error) {
	location := c.source.Location()

	products, err := c.fetchFromSource(ctx)
	if err != nil {
		if c.cache != nil {
			if snapshot, snapErr := c.cache.LoadSnapshot(location); snapErr == nil {
				LogWarn("Catalogue source %s unavailable (%v), using snapshot from %s",
					location, err, snapshot.Metadata.FetchedAt.Format("2006-01-02 15:04"))
				c.install(snapshot.Products)
				return c.products, nil
			}
		}
		return nil, &CatalogUnavailableError{Source: location, Err: err}
	}

	c.install(products)
	LogDebug("Loaded %d product(s) from %s", len(products), location)

	if c.cache != nil {
		if err := c.cache.SaveSnapshot(location, products); err != nil {
			LogWarn("Failed to save catalogue snapshot: %v", err)
		}
	}
	return c.products, nil
}

func (c *Catalog) fetchFromSource(ctx context.Context) ([]Product, error) {
	data, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

func (c *Catalog) install(products []Product) {
	c.products = products
	c.loaded = true
	c.generation++
}

// LoadOrEmpty degrades a catalogue failure to an empty list and reports it
func (c *Catalog) LoadOrEmpty(ctx context.Context) ([]Product, error) {
	products, err := c.Load(ctx)
	if err != nil {
		LogWarn("Could not load products: %v", err)
		return []Product{}, err
	}
	return products, nil
}

// FindByID finds a product by exact id
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindByIDOrSKU finds a product whose id or sku equals key
func FindByIDOrSKU(products []Product, key string) (Product, bool) {
	for _, p := range products {
		if p.ID == key || (p.SKU != "" && p.SKU == key) {
			return p, true
		}
	}
	return Product{}, false
}

// FindByName finds a product by case-insensitive name
func FindByName(products []Product, name string) (Product, bool) {
	if name == "" {
		return Product{}, false
	}
	lower := strings.ToLower(name)
	for _, p := range products {
		if strings.ToLower(p.Name) == lower {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the distinct non-empty categories, sorted
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// Filter applies the category and free-text filters used when browsing.
// With neither filter set nothing is shown.
func Filter(products []Product, category, query string) []Product {
	category = strings.ToLower(strings.TrimSpace(category))
	query = strings.ToLower(strings.TrimSpace(query))
	if category == "" && query == "" {
		return nil
	}

	filtered := make([]Product, 0)
	for _, p := range products {
		if category != "" && strings.ToLower(strings.TrimSpace(p.Category)) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Brand), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
