// ABOUTME: Calendar event repository operations
// ABOUTME: Handles free-form calendar entries merged into the day view

package db

import (
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// ListCalendarEvents returns every free-form calendar entry for the agent.
func (s *Store) ListCalendarEvents() ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	if err := s.Read(CollCalendarEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetCalendarEvent returns the event with the given id, or nil if absent.
func (s *Store) GetCalendarEvent(id string) (*models.CalendarEvent, error) {
	events, err := s.ListCalendarEvents()
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, nil
}

// PutCalendarEvent upserts an event by id.
func (s *Store) PutCalendarEvent(e *models.CalendarEvent) error {
	if e == nil {
		return ErrInvalidRecord
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	events, err := s.ListCalendarEvents()
	if err != nil {
		return err
	}
	replaced := false
	for i := range events {
		if events[i].ID == e.ID {
			events[i] = *e
			replaced = true
			break
		}
	}
	if !replaced {
		events = append(events, *e)
	}
	return s.Write(CollCalendarEvents, events)
}

// DeleteCalendarEvent removes an event by id.
func (s *Store) DeleteCalendarEvent(id string) error {
	events, err := s.ListCalendarEvents()
	if err != nil {
		return err
	}
	filtered := events[:0]
	for _, e := range events {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	return s.Write(CollCalendarEvents, filtered)
}
