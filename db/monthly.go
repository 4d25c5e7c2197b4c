// ABOUTME: Monthly pipeline repository operations
// ABOUTME: Handles the current-month prospect list and provenance lookups

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListMonthly returns every monthly pipeline item for the agent.
func (s *Store) ListMonthly() ([]models.MonthlyItem, error) {
	var items []models.MonthlyItem
	if err := s.Read(CollMonthly, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetMonthlyItem returns the item with the given id, or nil if absent.
func (s *Store) GetMonthlyItem(id string) (*models.MonthlyItem, error) {
	items, err := s.ListMonthly()
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

// FindMonthlyBySource returns the item created from the given promotion
// source, or nil. This is the idempotency check for pipeline promotions.
func (s *Store) FindMonthlyBySource(sourceType, sourceID string) (*models.MonthlyItem, error) {
	items, err := s.ListMonthly()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].SourceType == sourceType && items[i].SourceID == sourceID {
			return &items[i], nil
		}
	}
	return nil, nil
}

// PutMonthlyItem upserts an item by id.
func (s *Store) PutMonthlyItem(item *models.MonthlyItem) error {
	if item == nil {
		return ErrInvalidRecord
	}
	if item.ID == "" {
		item.ID = NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	items, err := s.ListMonthly()
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
	return s.Write(CollMonthly, items)
}

// DeleteMonthlyItem removes an item by id.
func (s *Store) DeleteMonthlyItem(id string) error {
	items, err := s.ListMonthly()
	if err != nil {
		return err
	}
	filtered := items[:0]
	for _, item := range items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	return s.Write(CollMonthly, filtered)
}
