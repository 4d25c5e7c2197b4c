// ABOUTME: Visit report repository operations
// ABOUTME: Handles 3-visit report rows and combined-report text building

package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListVisits returns every visit row for the agent.
func (s *Store) ListVisits() ([]models.Visit, error) {
	var visits []models.Visit
	if err := s.Read(CollVisits, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// GetVisit returns the visit with the given id, or nil if absent.
func (s *Store) GetVisit(id string) (*models.Visit, error) {
	visits, err := s.ListVisits()
	if err != nil {
		return nil, err
	}
	for i := range visits {
		if visits[i].ID == id {
			return &visits[i], nil
		}
	}
	return nil, nil
}

// PutVisit upserts a visit by id.
func (s *Store) PutVisit(v *models.Visit) error {
	if v == nil {
		return ErrInvalidRecord
	}
	if v.ID == "" {
		v.ID = NewID()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	visits, err := s.ListVisits()
	if err != nil {
		return err
	}
	replaced := false
	for i := range visits {
		if visits[i].ID == v.ID {
			visits[i] = *v
			replaced = true
			break
		}
	}
	if !replaced {
		visits = append(visits, *v)
	}
	return s.Write(CollVisits, visits)
}

// DeleteVisit removes a visit by id.
func (s *Store) DeleteVisit(id string) error {
	visits, err := s.ListVisits()
	if err != nil {
		return err
	}
	filtered := visits[:0]
	for _, v := range visits {
		if v.ID != id {
			filtered = append(filtered, v)
		}
	}
	return s.Write(CollVisits, filtered)
}

// CombineVisits renders the selected visit rows as a single shareable
// report, one block per visit in selection order.
func (s *Store) CombineVisits(ids []string) (string, error) {
	visits, err := s.ListVisits()
	if err != nil {
		return "", err
	}
	byID := make(map[string]models.Visit, len(visits))
	for _, v := range visits {
		byID[v.ID] = v
	}

	var b strings.Builder
	n := 0
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			continue
		}
		n++
		fmt.Fprintf(&b, "Visit %d: %s (%s)\n", n, v.Name, v.Date)
		fmt.Fprintf(&b, "  Source: %s | OPF: %s\n", v.Source, v.OPF)
		if v.Concept != "" {
			fmt.Fprintf(&b, "  Concept: %s\n", v.Concept)
		}
		if v.Premium > 0 {
			fmt.Fprintf(&b, "  Premium: RM %.2f\n", v.Premium)
		}
		if v.Outcome != "" {
			fmt.Fprintf(&b, "  Outcome: %s\n", v.Outcome)
		}
		fmt.Fprintf(&b, "  Referral: %s\n\n", v.Referral)
	}
	if n == 0 {
		return "", fmt.Errorf("no matching visits selected")
	}
	return b.String(), nil
}
