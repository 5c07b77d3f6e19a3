package internal

import (
	"context"
	"encoding/json"
	"sync"
)

// Selection holds the products the user picked, keyed by product id
type Selection struct {
	store StateStore

	mu    sync.Mutex
	items map[string]SelectedProduct
	order []string
}

// NewSelection creates an empty selection persisted through store
func NewSelection(store StateStore) *Selection {
	return &Selection{
		store: store,
		items: make(map[string]SelectedProduct),
	}
}

// Toggle deselects id when present, otherwise selects it using meta.
// It reports whether id is selected afterwards.
func (s *Selection) Toggle(id string, meta SelectedProduct) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := false
	if _, ok := s.items[id]; ok {
		s.removeLocked(id)
	} else {
		meta.ID = id
		s.items[id] = meta
		s.order = append(s.order, id)
		selected = true
	}
	s.saveLocked()
	return selected
}

// Remove deselects id; it is a no-op when id is not selected
func (s *Selection) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	s.removeLocked(id)
	s.saveLocked()
	return true
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]SelectedProduct)
	s.order = nil
	s.saveLocked()
}

// Has reports whether id is selected
func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	return ok
}

// Len returns the number of selected products
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// List returns a copy of the selected products
func (s *Selection) List() []SelectedProduct {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SelectedProduct, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// IDs returns the selected ids
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *Selection) removeLocked(id string) {
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// saveLocked writes the id list; failures are logged and swallowed
func (s *Selection) saveLocked() {
	if s.store == nil {
		return
	}
	ids := s.order
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		LogWarn("%v", &PersistenceError{Key: SelectedStorageKey, Op: "encode", Err: err})
		return
	}
	if err := s.store.Set(SelectedStorageKey, string(data)); err != nil {
		LogWarn("%v", &PersistenceError{Key: SelectedStorageKey, Op: "write", Err: err})
	}
}

// Restore replaces the selection with the persisted ids resolved against the
// catalogue by id, then sku. Ids that no longer resolve are dropped.
func (s *Selection) Restore(ctx context.Context, catalog *Catalog) {
	if s.store == nil {
		return
	}

	raw, ok, err := s.store.Get(SelectedStorageKey)
	if err != nil {
		LogWarn("%v", &PersistenceError{Key: SelectedStorageKey, Op: "read", Err: err})
		return
	}
	if !ok || raw == "" {
		return
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		ids = decodeLooseIDs(raw)
		if ids == nil {
			LogWarn("%v", &PersistenceError{Key: SelectedStorageKey, Op: "decode", Err: err})
			return
		}
	}

	products, err := catalog.Load(ctx)
	if err != nil {
		LogWarn("Could not restore selection: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]SelectedProduct)
	s.order = nil
	for _, id := range ids {
		p, found := FindByIDOrSKU(products, id)
		if !found {
			LogDebug("Dropping stored selection %q: not in catalogue", id)
			continue
		}
		if _, dup := s.items[p.ID]; dup {
			continue
		}
		s.items[p.ID] = p.Snapshot()
		s.order = append(s.order, p.ID)
	}
}

// decodeLooseIDs accepts arrays holding numbers as well as strings
func decodeLooseIDs(raw string) []string {
	var values []flexString
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, v.trimmed())
	}
	return ids
}
