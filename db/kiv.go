// ABOUTME: KIV repository operations
// ABOUTME: Handles the keep-in-view stalled prospect list

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListKIV returns every KIV item for the agent.
func (s *Store) ListKIV() ([]models.KIVItem, error) {
	var items []models.KIVItem
	if err := s.Read(CollKIV, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetKIVItem returns the item with the given id, or nil if absent.
func (s *Store) GetKIVItem(id string) (*models.KIVItem, error) {
	items, err := s.ListKIV()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// PutKIVItem upserts an item by id.
func (s *Store) PutKIVItem(item *models.KIVItem) error {
	if item == nil {
		return ErrInvalidRecord
	}
	if item.ID == "" {
		item.ID = NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	items, err := s.ListKIV()
	if err != nil {
		return err
	}
	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, *item)
	}
	return s.Write(CollKIV, items)
}

// DeleteKIVItem removes an item by id.
func (s *Store) DeleteKIVItem(id string) error {
	items, err := s.ListKIV()
	if err != nil {
		return err
	}
	filtered := items[:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return s.Write(CollKIV, filtered)
}
