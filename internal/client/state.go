// Package client holds the admin-side view of the catalog: the canonical
// product list, row selection, staged edits and the bulk sync pipeline that
// mirrors server updates optimistically.
package client

import (
	"sync"

	"catalog/internal/models"
)

// State is the canonical in-memory product list plus selection and upload
// metadata. All methods are safe for concurrent use.
type State struct {
	mu         sync.Mutex
	products   []models.Product
	selected   map[string]bool
	lastUpload *models.UploadFile
	pending    bool
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		selected: make(map[string]bool),
	}
}

// SetProducts replaces the whole list, e.g. after a load from the server.
func (s *State) SetProducts(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]models.Product(nil), products...)
}

// Products returns a copy of the current list.
func (s *State) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...)
}

// Product returns the row with the given id.
func (s *State) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// PatchRow stages an inline edit on a single row. The change is local until
// the row is explicitly saved.
func (s *State) PatchRow(id string, patch models.ProductPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.products[i].Name = *patch.Name
		}
		if patch.Description != nil {
			s.products[i].Description = *patch.Description
		}
		if patch.Price != nil {
			s.products[i].Price = *patch.Price
		}
		if patch.Stock != nil {
			s.products[i].Stock = *patch.Stock
		}
		if patch.MSC != nil {
			s.products[i].MSC = *patch.MSC
		}
		return true
	}
	return false
}

// Select marks a row as selected for bulk operations.
func (s *State) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[id] = true
}

// Deselect removes a row from the selection.
func (s *State) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

// ClearSelection empties the selected-row set.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
}

// SelectedIDs returns the selected row ids in list order.
func (s *State) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for _, p := range s.products {
		if s.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// ApplyBulkPatch merges the shared patch into every row matching the
// selected ids and returns the number of rows touched. This is the
// optimistic half of the bulk sync pipeline.
func (s *State) ApplyBulkPatch(ids []string, patch models.BulkPatch) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	count := 0
	for i := range s.products {
		if !want[s.products[i].ID] {
			continue
		}
		if patch.Price != nil {
			s.products[i].Price = *patch.Price
		}
		if patch.MSC != nil {
			s.products[i].MSC = *patch.MSC
		}
		count++
	}
	return count
}

// SetLastUpload records the most recent import file metadata.
func (s *State) SetLastUpload(file models.UploadFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpload = &file
}

// LastUpload returns the most recent import file metadata.
func (s *State) LastUpload() (models.UploadFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastUpload == nil {
		return models.UploadFile{}, false
	}
	return *s.lastUpload, true
}

// beginRequest acquires the pending lock, guarding against duplicate
// submissions while one is in flight.
func (s *State) beginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// finishRequest releases the pending lock and clears the selection; it runs
// after the request settles, success or failure.
func (s *State) finishRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.selected = make(map[string]bool)
}

// Pending reports whether a bulk submission is in flight.
func (s *State) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
