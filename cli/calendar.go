// ABOUTME: Calendar CLI commands
// ABOUTME: Month overview, day detail and free-form event CRUD

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
	"github.com/jiale-0528/mgr-sop/views"
)

func loadCalendarInput(store *db.Store) (views.CalendarInput, error) {
	var in views.CalendarInput
	var err error
	if in.Goals, err = store.ListGoals(); err != nil {
		return in, err
	}
	if in.KIV, err = store.ListKIV(); err != nil {
		return in, err
	}
	if in.Monthly, err = store.ListMonthly(); err != nil {
		return in, err
	}
	if in.Events, err = store.ListCalendarEvents(); err != nil {
		return in, err
	}
	return in, nil
}

// CalendarMonthCommand prints the month overview with per-day event counts.
func CalendarMonthCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	month := fs.String("month", "", "Month to show (YYYY-MM, default current)")
	_ = fs.Parse(args)

	now := time.Now()
	year, m := now.Year(), now.Month()
	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			return fmt.Errorf("invalid month %q", *month)
		}
		year, m = t.Year(), t.Month()
	}

	in, err := loadCalendarInput(store)
	if err != nil {
		return fmt.Errorf("failed to load calendar data: %w", err)
	}
	grid := views.BuildMonthGrid(in, year, m)

	fmt.Printf("%s %d\n\n", m, year)
	if len(grid.Days) == 0 {
		fmt.Println("Nothing scheduled this month")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DAY\tEVENTS")
	_, _ = fmt.Fprintln(w, "---\t------")
	last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.Local).Day()
	for day := 1; day <= last; day++ {
		marker, ok := grid.Days[day]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "%02d\t%d\n", day, marker.Count)
	}
	_ = w.Flush()
	return nil
}

// CalendarDayCommand prints everything due on one date, urgent first.
func CalendarDayCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("calendar day", flag.ExitOnError)
	dateStr := fs.String("date", time.Now().Format("2006-01-02"), "Date to show (YYYY-MM-DD)")
	_ = fs.Parse(args)

	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		return fmt.Errorf("invalid date %q", *dateStr)
	}

	in, err := loadCalendarInput(store)
	if err != nil {
		return fmt.Errorf("failed to load calendar data: %w", err)
	}
	events := views.DayEvents(in, date, time.Now())
	if len(events) == 0 {
		fmt.Printf("Nothing scheduled on %s\n", *dateStr)
		return nil
	}

	fmt.Printf("Schedule for %s:\n\n", *dateStr)
	for _, e := range events {
		line := fmt.Sprintf("[%s] %s", e.Source, e.Title)
		if e.Subtitle != "" {
			line += " — " + e.Subtitle
		}
		switch e.Urgency {
		case views.UrgencyUrgent:
			Errorf("%s (%dd)", line, e.Days)
		case views.UrgencyWarning:
			Warnf("%s (%dd)", line, e.Days)
		default:
			fmt.Println("  " + line)
		}
	}
	return nil
}

// AddEventCommand adds a free-form calendar event.
func AddEventCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-event", flag.ExitOnError)
	title := fs.String("title", "", "Event title (required)")
	when := fs.String("time", "", "Event time (YYYY-MM-DD or with time, required)")
	description := fs.String("description", "", "Event description")
	color := fs.String("color", "", "Calendar indicator color")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	t := models.ParseDateTime(*when)
	if !t.Valid {
		return fmt.Errorf("invalid event time %q", *when)
	}

	event := &models.CalendarEvent{
		Title:       *title,
		Time:        t,
		Description: *description,
		Color:       *color,
	}
	if err := store.PutCalendarEvent(event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	Successf("Event added: %s at %s", event.Title, event.Time.String())
	return nil
}

// DeleteEventCommand removes a calendar event.
func DeleteEventCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("event ID is required")
	}
	event, err := store.GetCalendarEvent(args[0])
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event not found")
	}
	if err := store.DeleteCalendarEvent(args[0]); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	Successf("Event deleted: %s", event.Title)
	return nil
}
