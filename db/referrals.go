// ABOUTME: Referral repository operations
// ABOUTME: Handles referral CRUD and the visit-to-referral transfer

package db

import (
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListReferrals returns every referral for the agent.
func (s *Store) ListReferrals() ([]models.Referral, error) {
	var referrals []models.Referral
	if err := s.Read(CollReferrals, &referrals); err != nil {
		return nil, err
	}
	return referrals, nil
}

// GetReferral returns the referral with the given id, or nil if absent.
func (s *Store) GetReferral(id string) (*models.Referral, error) {
	referrals, err := s.ListReferrals()
	if err != nil {
		return nil, err
	}
	for i := range referrals {
		if referrals[i].ID == id {
			return &referrals[i], nil
		}
	}
	return nil, nil
}

// PutReferral upserts a referral by id.
func (s *Store) PutReferral(r *models.Referral) error {
	if r == nil {
		return ErrInvalidRecord
	}
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	referrals, err := s.ListReferrals()
	if err != nil {
		return err
	}
	replaced := false
	for i := range referrals {
		if referrals[i].ID == r.ID {
			referrals[i] = *r
			replaced = true
			break
		}
	}
	if !replaced {
		referrals = append(referrals, *r)
	}
	return s.Write(CollReferrals, referrals)
}

// DeleteReferral removes a referral by id.
func (s *Store) DeleteReferral(id string) error {
	referrals, err := s.ListReferrals()
	if err != nil {
		return err
	}
	filtered := referrals[:0]
	for _, r := range referrals {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return s.Write(CollReferrals, filtered)
}

// TransferVisitToReferral creates a referral prefilled from a visit row
// that produced a referral. The visit row itself is kept.
func (s *Store) TransferVisitToReferral(visitID string) (*models.Referral, error) {
	visit, err := s.GetVisit(visitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, fmt.Errorf("visit %s not found", visitID)
	}

	referral := &models.Referral{
		Name:             visit.Name,
		Age:              visit.Age,
		From:             visit.Source,
		FirstMeetingDate: visit.Date,
		Outcome:          visit.Outcome,
	}
	if err := s.PutReferral(referral); err != nil {
		return nil, err
	}
	return referral, nil
}
