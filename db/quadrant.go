// ABOUTME: Quadrant scorecard repository operations
// ABOUTME: Single-document load/save plus period-keyed cell updates

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// GetQuadrant loads the agent's planning scorecard. An absent document
// comes back with initialized maps.
func (s *Store) GetQuadrant() (*models.QuadrantData, error) {
	var q models.QuadrantData
	if err := s.Read(CollQuadrant, &q); err != nil {
		return nil, err
	}
	if q.Preparation == nil {
		q.Preparation = make(map[string]models.PreparationCell)
	}
	if q.Action == nil {
		q.Action = make(map[string]models.ActionCell)
	}
	if q.Strategy == nil {
		q.Strategy = make(map[string]models.StrategyCell)
	}
	if q.Motivation == nil {
		q.Motivation = make(map[string]models.MotivationCell)
	}
	return &q, nil
}

// SaveQuadrant stamps lastUpdate and persists the whole scorecard.
func (s *Store) SaveQuadrant(q *models.QuadrantData) error {
	if q == nil {
		return ErrInvalidRecord
	}
	q.LastUpdate = time.Now()
	return s.Write(CollQuadrant, q)
}

// SavePreparation upserts the preparation cell for a month.
func (s *Store) SavePreparation(cell models.PreparationCell) error {
	q, err := s.GetQuadrant()
	if err != nil {
		return err
	}
	cell.UpdatedAt = time.Now()
	q.Preparation[cell.Month] = cell
	return s.SaveQuadrant(q)
}

// SaveAction upserts the action cell for a month-week.
func (s *Store) SaveAction(cell models.ActionCell) error {
	q, err := s.GetQuadrant()
	if err != nil {
		return err
	}
	cell.UpdatedAt = time.Now()
	q.Action[cell.Month+"-"+cell.Week] = cell
	return s.SaveQuadrant(q)
}

// SaveStrategy upserts the strategy cell for a month.
func (s *Store) SaveStrategy(cell models.StrategyCell) error {
	q, err := s.GetQuadrant()
	if err != nil {
		return err
	}
	cell.UpdatedAt = time.Now()
	q.Strategy[cell.Month] = cell
	return s.SaveQuadrant(q)
}

// SaveMotivation upserts the motivation cell for a month.
func (s *Store) SaveMotivation(cell models.MotivationCell) error {
	q, err := s.GetQuadrant()
	if err != nil {
		return err
	}
	cell.UpdatedAt = time.Now()
	q.Motivation[cell.Month] = cell
	return s.SaveQuadrant(q)
}

// LatestAction returns the most recently updated action cell, or nil.
func LatestAction(q *models.QuadrantData) *models.ActionCell {
	var latest *models.ActionCell
	for k := range q.Action {
		cell := q.Action[k]
		if latest == nil || cell.UpdatedAt.After(latest.UpdatedAt) {
			latest = &cell
		}
	}
	return latest
}

// LatestPreparation returns the most recently updated preparation cell, or nil.
func LatestPreparation(q *models.QuadrantData) *models.PreparationCell {
	var latest *models.PreparationCell
	for k := range q.Preparation {
		cell := q.Preparation[k]
		if latest == nil || cell.UpdatedAt.After(latest.UpdatedAt) {
			latest = &cell
		}
	}
	return latest
}
