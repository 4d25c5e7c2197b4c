// ABOUTME: Tests for calendar month bucketing and day detail urgency
// ABOUTME: Covers source-order colors, day counting and per-source urgency tiers

package views

import (
	"testing"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestBuildMonthGridCountsAndFirstColorWins(t *testing.T) {
	in := CalendarInput{
		Goals: []models.Goal{
			{ID: "g1", Title: "MDRT", DueDate: models.DT(date(2026, time.March, 15))},
		},
		KIV: []models.KIVItem{
			{ID: "k1", Name: "Lim", NextMeeting: models.DT(date(2026, time.March, 15))},
		},
		Events: []models.CalendarEvent{
			{ID: "e1", Title: "Roadshow", Time: models.DT(date(2026, time.April, 2))},
		},
	}

	grid := BuildMonthGrid(in, 2026, time.March)
	marker, ok := grid.Days[15]
	if !ok {
		t.Fatal("expected a marker on the 15th")
	}
	if marker.Count != 2 {
		t.Errorf("expected 2 events on the 15th, got %d", marker.Count)
	}
	// Goals are marked before KIV, so the goal color owns the day.
	if marker.Color != colorGoal {
		t.Errorf("expected goal color %s, got %s", colorGoal, marker.Color)
	}
	if _, ok := grid.Days[2]; ok {
		t.Error("April event must not leak into March")
	}
}

func TestBuildMonthGridSkipsInvalidDates(t *testing.T) {
	in := CalendarInput{
		Goals: []models.Goal{
			{ID: "g1", DueDate: models.ParseDateTime("not a date")},
		},
	}
	grid := BuildMonthGrid(in, 2026, time.March)
	if len(grid.Days) != 0 {
		t.Error("unparseable dates must not produce markers")
	}
}

func TestDayEventsGoalUrgency(t *testing.T) {
	now := date(2026, time.March, 1)
	cases := []struct {
		due  time.Time
		want Urgency
	}{
		{date(2026, time.March, 5), UrgencyUrgent},   // 4 days
		{date(2026, time.March, 20), UrgencyWarning}, // 19 days
		{date(2026, time.June, 1), UrgencyNormal},
	}
	for _, tc := range cases {
		in := CalendarInput{Goals: []models.Goal{
			{ID: "g", Title: "goal", DueDate: models.DT(tc.due)},
		}}
		events := DayEvents(in, tc.due, now)
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}
		if events[0].Urgency != tc.want {
			t.Errorf("goal due %s: expected %s, got %s", tc.due, tc.want, events[0].Urgency)
		}
	}
}

func TestDayEventsKIVUrgencyTighterThanGoals(t *testing.T) {
	now := date(2026, time.March, 1)
	meeting := date(2026, time.March, 3) // 2 days out
	in := CalendarInput{KIV: []models.KIVItem{
		{ID: "k", Name: "Lim", NextMeeting: models.DT(meeting)},
	}}
	events := DayEvents(in, meeting, now)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	// 2 days out is only a warning for KIV (urgent band is <=1 day).
	if events[0].Urgency != UrgencyWarning {
		t.Errorf("expected warning, got %s", events[0].Urgency)
	}
}

func TestDayEventsSortsUrgentFirst(t *testing.T) {
	now := date(2026, time.March, 1)
	day := date(2026, time.March, 2)
	in := CalendarInput{
		Monthly: []models.MonthlyItem{
			{ID: "m", Name: "Appointment", Appointment: models.DT(day)},
		},
		KIV: []models.KIVItem{
			{ID: "k", Name: "Lim", NextMeeting: models.DT(day)}, // 1 day -> urgent
		},
	}
	events := DayEvents(in, day, now)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Source != SourceKIVItem {
		t.Errorf("urgent KIV meeting should sort first, got %s", events[0].Source)
	}
}

func TestDaysUntilCeils(t *testing.T) {
	now := time.Date(2026, time.March, 1, 23, 0, 0, 0, time.UTC)
	target := time.Date(2026, time.March, 2, 1, 0, 0, 0, time.UTC)
	if d := daysUntil(now, target); d != 1 {
		t.Errorf("2 hours into tomorrow should round up to 1 day, got %d", d)
	}
	if d := daysUntil(target, now); d != 0 {
		t.Errorf("2 hours overdue should ceil to 0, got %d", d)
	}
}
