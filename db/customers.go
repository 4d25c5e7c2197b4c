// ABOUTME: Customer repository operations
// ABOUTME: Handles policy-row CRUD, text search, and idNumber identity lookups

package db

import (
	"strings"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListCustomers returns every policy row for the agent.
func (s *Store) ListCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.Read(CollCustomers, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer returns the policy row with the given id, or nil if absent.
func (s *Store) GetCustomer(id string) (*models.Customer, error) {
	customers, err := s.ListCustomers()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// PutCustomer upserts a policy row by id, assigning a fresh id and
// createdAt for new rows.
func (s *Store) PutCustomer(c *models.Customer) error {
	if c == nil {
		return ErrInvalidRecord
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	customers, err := s.ListCustomers()
	if err != nil {
		return err
	}
	replaced := false
	for i := range customers {
		if customers[i].ID == c.ID {
			customers[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		customers = append(customers, *c)
	}
	return s.Write(CollCustomers, customers)
}

// DeleteCustomer removes a policy row. Deleting an id that does not exist
// is a no-op, mirroring the array-filter delete of the source data model.
func (s *Store) DeleteCustomer(id string) error {
	customers, err := s.ListCustomers()
	if err != nil {
		return err
	}
	filtered := customers[:0]
	for _, c := range customers {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	return s.Write(CollCustomers, filtered)
}

// SearchCustomers filters rows by a case-insensitive term over the names,
// idNumber and policyNumber fields. An empty term returns everything.
func (s *Store) SearchCustomers(term string) ([]models.Customer, error) {
	customers, err := s.ListCustomers()
	if err != nil {
		return nil, err
	}
	if term == "" {
		return customers, nil
	}
	term = strings.ToLower(term)
	var matched []models.Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.LifeAssuredName), term) ||
			strings.Contains(strings.ToLower(c.ProposerName), term) ||
			strings.Contains(strings.ToLower(c.IDNumber), term) ||
			strings.Contains(strings.ToLower(c.PolicyNumber), term) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// FindCustomersByIDNumber returns every policy row belonging to one identity.
func (s *Store) FindCustomersByIDNumber(idNumber string) ([]models.Customer, error) {
	if idNumber == "" {
		return nil, nil
	}
	customers, err := s.ListCustomers()
	if err != nil {
		return nil, err
	}
	var rows []models.Customer
	for _, c := range customers {
		if c.IDNumber == idNumber {
			rows = append(rows, c)
		}
	}
	return rows, nil
}
