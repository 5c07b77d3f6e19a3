package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role values used in conversation messages
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Product represents a single catalogue entry
type Product struct {
	ID          string `json:"id"`
	SKU         string `json:"sku,omitempty"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// SelectedProduct is the snapshot of a product taken when it was selected
type SelectedProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ConversationMessage is a single chat turn
type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Suggestion proposes a catalogue product for a routine step the selection does not cover
type Suggestion struct {
	Category string  `json:"category"`
	Product  Product `json:"product"`
}

// Snapshot copies the fields kept for a selection
func (p Product) Snapshot() SelectedProduct {
	return SelectedProduct{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
	}
}

// AsProduct widens a snapshot back to a Product, leaving catalogue-only fields empty
func (s SelectedProduct) AsProduct() Product {
	return Product{
		ID:          s.ID,
		Name:        s.Name,
		Brand:       s.Brand,
		Category:    s.Category,
		Description: s.Description,
	}
}

// rawProduct mirrors the loosely typed catalogue document
type rawProduct struct {
	ID          flexString `json:"id"`
	SKU         flexString `json:"sku"`
	Name        flexString `json:"name"`
	Brand       flexString `json:"brand"`
	Category    flexString `json:"category"`
	Description flexString `json:"description"`
	Image       flexString `json:"image"`
}

type catalogDocument struct {
	Products []rawProduct `json:"products"`
}

// flexString accepts JSON strings, numbers, booleans and null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("unsupported value %s", string(data))
}

func (f flexString) trimmed() string {
	return strings.TrimSpace(string(f))
}

// ParseCatalog parses a catalogue document of the form {"products": [...]}.
// Missing fields become empty strings, products without an id get "<name>-<index>",
// and later duplicates of an id are dropped.
func ParseCatalog(data []byte) ([]Product, error) {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue JSON: %w", err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("catalogue document has no products array")
	}

	products := make([]Product, 0, len(doc.Products))
	seen := make(map[string]bool, len(doc.Products))
	for i, raw := range doc.Products {
		p := Product{
			ID:          raw.ID.trimmed(),
			SKU:         raw.SKU.trimmed(),
			Name:        raw.Name.trimmed(),
			Brand:       raw.Brand.trimmed(),
			Category:    raw.Category.trimmed(),
			Description: raw.Description.trimmed(),
			Image:       raw.Image.trimmed(),
		}
		if p.ID == "" {
			p.ID = p.SKU
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("%s-%d", p.Name, i)
		}
		if seen[p.ID] {
			LogWarn("Dropping duplicate catalogue id %q (%s)", p.ID, p.Name)
			continue
		}
		seen[p.ID] = true
		products = append(products, p)
	}

	return products, nil
}
