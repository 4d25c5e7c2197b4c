// ABOUTME: Goal repository operations
// ABOUTME: Handles production-target CRUD over the agent store

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListGoals returns every goal for the agent.
func (s *Store) ListGoals() ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.Read(CollGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal returns the goal with the given id, or nil if absent.
func (s *Store) GetGoal(id string) (*models.Goal, error) {
	goals, err := s.ListGoals()
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].ID == id {
			return &goals[i], nil
		}
	}
	return nil, nil
}

// PutGoal upserts a goal by id.
func (s *Store) PutGoal(g *models.Goal) error {
	if g == nil {
		return ErrInvalidRecord
	}
	if g.ID == "" {
		g.ID = NewID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	goals, err := s.ListGoals()
	if err != nil {
		return err
	}
	replaced := false
	for i := range goals {
		if goals[i].ID == g.ID {
			goals[i] = *g
			replaced = true
			break
		}
	}
	if !replaced {
		goals = append(goals, *g)
	}
	return s.Write(CollGoals, goals)
}

// DeleteGoal removes a goal by id.
func (s *Store) DeleteGoal(id string) error {
	goals, err := s.ListGoals()
	if err != nil {
		return err
	}
	filtered := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			filtered = append(filtered, g)
		}
	}
	return s.Write(CollGoals, filtered)
}
