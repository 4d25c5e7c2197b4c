// ABOUTME: Calendar month aggregation and day detail views
// ABOUTME: Buckets goal, KIV, monthly and free-form events by calendar date with urgency tiers

package views

import (
	"math"
	"sort"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// Urgency tiers, ordered most urgent first for sorting.
type Urgency int

const (
	UrgencyUrgent Urgency = iota
	UrgencyWarning
	UrgencyNormal
)

func (u Urgency) String() string {
	switch u {
	case UrgencyUrgent:
		return "urgent"
	case UrgencyWarning:
		return "warning"
	}
	return "normal"
}

// Event source types, in the declaration order that decides a day's
// indicator color.
const (
	SourceGoal    = "goal"
	SourceKIVItem = "kiv"
	SourceMonthly = "monthly"
	SourceEvent   = "event"
)

// Default indicator colors per source.
const (
	colorGoal    = "#4A90E2"
	colorKIV     = "#F39C12"
	colorMonthly = "#27AE60"
	colorEvent   = "#9B59B6"
)

// DayEvent is one entry in a day's detail list.
type DayEvent struct {
	Source   string
	ID       string
	Title    string
	Subtitle string
	Color    string
	Urgency  Urgency
	// Days is the day count until due, negative when overdue. Only
	// meaningful for goal and KIV entries.
	Days int
}

// DayMarker summarizes one calendar cell.
type DayMarker struct {
	Count int
	// Color comes from the first event in source arrival order.
	Color string
}

// MonthGrid maps day-of-month to its marker for a displayed month. The
// displayed month is explicit state passed in by the caller, never a
// package-level cursor.
type MonthGrid struct {
	Year  int
	Month time.Month
	Days  map[int]DayMarker
}

// CalendarInput carries the four event sources the calendar merges.
type CalendarInput struct {
	Goals    []models.Goal
	KIV      []models.KIVItem
	Monthly  []models.MonthlyItem
	Events   []models.CalendarEvent
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// daysUntil counts calendar days from now to target, rounding up so that
// later-today is 1 until the times coincide. Matches the source's ceil of
// the raw time difference.
func daysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// BuildMonthGrid buckets all four sources into the days of one month.
func BuildMonthGrid(in CalendarInput, year int, month time.Month) MonthGrid {
	grid := MonthGrid{Year: year, Month: month, Days: make(map[int]DayMarker)}

	mark := func(t time.Time, color string) {
		if t.Year() != year || t.Month() != month {
			return
		}
		day := t.Day()
		m := grid.Days[day]
		if m.Count == 0 {
			m.Color = color
		}
		m.Count++
		grid.Days[day] = m
	}

	// Source order decides which color wins a shared day.
	for _, g := range in.Goals {
		if !g.DueDate.Valid {
			continue
		}
		color := g.Color
		if color == "" {
			color = colorGoal
		}
		mark(g.DueDate.Time, color)
	}
	for _, k := range in.KIV {
		if k.NextMeeting.Valid {
			mark(k.NextMeeting.Time, colorKIV)
		}
	}
	for _, m := range in.Monthly {
		if m.Appointment.Valid {
			mark(m.Appointment.Time, colorMonthly)
		}
	}
	for _, e := range in.Events {
		if e.Time.Valid {
			color := e.Color
			if color == "" {
				color = colorEvent
			}
			mark(e.Time.Time, color)
		}
	}
	return grid
}

// DayEvents collects everything due on one calendar date, sorted urgent
// first. now anchors the urgency computation.
func DayEvents(in CalendarInput, date time.Time, now time.Time) []DayEvent {
	key := dateKey(date)
	var events []DayEvent

	for _, g := range in.Goals {
		if g.DueDate.Date() != key {
			continue
		}
		days := daysUntil(now, date)
		urgency := UrgencyNormal
		switch {
		case days <= 7:
			urgency = UrgencyUrgent
		case days <= 30:
			urgency = UrgencyWarning
		}
		color := g.Color
		if color == "" {
			color = colorGoal
		}
		events = append(events, DayEvent{
			Source:   SourceGoal,
			ID:       g.ID,
			Title:    g.Title,
			Subtitle: "goal due",
			Color:    color,
			Urgency:  urgency,
			Days:     days,
		})
	}

	for _, k := range in.KIV {
		if k.NextMeeting.Date() != key {
			continue
		}
		days := daysUntil(now, date)
		urgency := UrgencyNormal
		switch {
		case days <= 1:
			urgency = UrgencyUrgent
		case days <= 3:
			urgency = UrgencyWarning
		}
		events = append(events, DayEvent{
			Source:   SourceKIVItem,
			ID:       k.ID,
			Title:    k.Name,
			Subtitle: "KIV meeting",
			Color:    colorKIV,
			Urgency:  urgency,
			Days:     days,
		})
	}

	for _, m := range in.Monthly {
		if m.Appointment.Date() != key {
			continue
		}
		events = append(events, DayEvent{
			Source:   SourceMonthly,
			ID:       m.ID,
			Title:    m.Name,
			Subtitle: "pipeline appointment",
			Color:    colorMonthly,
			Urgency:  UrgencyNormal,
		})
	}

	for _, e := range in.Events {
		if e.Time.Date() != key {
			continue
		}
		color := e.Color
		if color == "" {
			color = colorEvent
		}
		events = append(events, DayEvent{
			Source:   SourceEvent,
			ID:       e.ID,
			Title:    e.Title,
			Subtitle: e.Description,
			Color:    color,
			Urgency:  UrgencyNormal,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Urgency < events[j].Urgency
	})
	return events
}
