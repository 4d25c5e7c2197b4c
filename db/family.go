// ABOUTME: Family member repository operations
// ABOUTME: Handles the family network rows owned by customers

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListFamily returns every family member for the agent.
func (s *Store) ListFamily() ([]models.FamilyMember, error) {
	var family []models.FamilyMember
	if err := s.Read(CollFamily, &family); err != nil {
		return nil, err
	}
	return family, nil
}

// GetFamilyMember returns the member with the given id, or nil if absent.
func (s *Store) GetFamilyMember(id string) (*models.FamilyMember, error) {
	family, err := s.ListFamily()
	if err != nil {
		return nil, err
	}
	for i := range family {
		if family[i].ID == id {
			return &family[i], nil
		}
	}
	return nil, nil
}

// PutFamilyMember upserts a member by id.
func (s *Store) PutFamilyMember(m *models.FamilyMember) error {
	if m == nil {
		return ErrInvalidRecord
	}
	if m.ID == "" {
		m.ID = NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	family, err := s.ListFamily()
	if err != nil {
		return err
	}
	replaced := false
	for i := range family {
		if family[i].ID == m.ID {
			family[i] = *m
			replaced = true
			break
		}
	}
	if !replaced {
		family = append(family, *m)
	}
	return s.Write(CollFamily, family)
}

// DeleteFamilyMember removes a member by id.
func (s *Store) DeleteFamilyMember(id string) error {
	family, err := s.ListFamily()
	if err != nil {
		return err
	}
	filtered := family[:0]
	for _, m := range family {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}
	return s.Write(CollFamily, filtered)
}

// FamilyByCustomer groups members under their owning customer id.
func (s *Store) FamilyByCustomer() (map[string][]models.FamilyMember, error) {
	family, err := s.ListFamily()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.FamilyMember)
	for _, m := range family {
		grouped[m.ParentCustomerID] = append(grouped[m.ParentCustomerID], m)
	}
	return grouped, nil
}
