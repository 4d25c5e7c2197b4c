// ABOUTME: Reminder and calendar MCP tool handlers
// ABOUTME: Implements get_reminders and get_day_schedule tools over the derived views

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ReminderHandlers struct {
	store *db.Store
}

func NewReminderHandlers(store *db.Store) *ReminderHandlers {
	return &ReminderHandlers{store: store}
}

func (h *ReminderHandlers) loadReminderInput() (views.RemindersInput, error) {
	var in views.RemindersInput
	var err error
	if in.Customers, err = h.store.ListCustomers(); err != nil {
		return in, err
	}
	if in.Goals, err = h.store.ListGoals(); err != nil {
		return in, err
	}
	if in.Family, err = h.store.ListFamily(); err != nil {
		return in, err
	}
	if in.KIV, err = h.store.ListKIV(); err != nil {
		return in, err
	}
	return in, nil
}

type GetRemindersInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"Filter to one list: beneficiaries, goals, marketable, or kiv (default all)"`
}

type ReminderOutput struct {
	Title      string `json:"title"`
	Details    string `json:"details,omitempty"`
	NavKind    string `json:"nav_kind"`
	NavID      string `json:"nav_id"`
	CanPromote bool   `json:"can_promote,omitempty"`
}

type GetRemindersOutput struct {
	MissingBeneficiaries    []ReminderOutput `json:"missing_beneficiaries,omitempty"`
	UncompletedGoals        []ReminderOutput `json:"uncompleted_goals,omitempty"`
	MarketableOpportunities []ReminderOutput `json:"marketable_opportunities,omitempty"`
	KIVDueMeetings          []ReminderOutput `json:"kiv_due_meetings,omitempty"`
}

func remindersToOutput(list []views.Reminder) []ReminderOutput {
	out := make([]ReminderOutput, len(list))
	for i, r := range list {
		out[i] = ReminderOutput{
			Title:      r.Title,
			Details:    r.Details,
			NavKind:    r.Nav.Kind.String(),
			NavID:      r.Nav.ID,
			CanPromote: r.CanPromote,
		}
	}
	return out
}

func (h *ReminderHandlers) GetReminders(_ context.Context, request *mcp.CallToolRequest, input GetRemindersInput) (*mcp.CallToolResult, GetRemindersOutput, error) {
	in, err := h.loadReminderInput()
	if err != nil {
		return nil, GetRemindersOutput{}, fmt.Errorf("failed to load reminder data: %w", err)
	}

	r := views.BuildReminders(in, time.Now())
	var out GetRemindersOutput
	switch input.Kind {
	case "":
		out = GetRemindersOutput{
			MissingBeneficiaries:    remindersToOutput(r.MissingBeneficiaries),
			UncompletedGoals:        remindersToOutput(r.UncompletedGoals),
			MarketableOpportunities: remindersToOutput(r.MarketableOpportunities),
			KIVDueMeetings:          remindersToOutput(r.KIVDueMeetings),
		}
	case "beneficiaries":
		out.MissingBeneficiaries = remindersToOutput(r.MissingBeneficiaries)
	case "goals":
		out.UncompletedGoals = remindersToOutput(r.UncompletedGoals)
	case "marketable":
		out.MarketableOpportunities = remindersToOutput(r.MarketableOpportunities)
	case "kiv":
		out.KIVDueMeetings = remindersToOutput(r.KIVDueMeetings)
	default:
		return nil, GetRemindersOutput{}, fmt.Errorf("unknown kind %q", input.Kind)
	}
	return nil, out, nil
}

type GetDayScheduleInput struct {
	Date string `json:"date" jsonschema:"Calendar date to inspect (YYYY-MM-DD)"`
}

type DayEventOutput struct {
	Source   string `json:"source"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Urgency  string `json:"urgency"`
	Days     int    `json:"days_until,omitempty"`
}

type GetDayScheduleOutput struct {
	Date   string           `json:"date"`
	Events []DayEventOutput `json:"events"`
}

func (h *ReminderHandlers) GetDaySchedule(_ context.Context, request *mcp.CallToolRequest, input GetDayScheduleInput) (*mcp.CallToolResult, GetDayScheduleOutput, error) {
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, GetDayScheduleOutput{}, fmt.Errorf("invalid date: %w", err)
	}

	var in views.CalendarInput
	if in.Goals, err = h.store.ListGoals(); err != nil {
		return nil, GetDayScheduleOutput{}, err
	}
	if in.KIV, err = h.store.ListKIV(); err != nil {
		return nil, GetDayScheduleOutput{}, err
	}
	if in.Monthly, err = h.store.ListMonthly(); err != nil {
		return nil, GetDayScheduleOutput{}, err
	}
	if in.Events, err = h.store.ListCalendarEvents(); err != nil {
		return nil, GetDayScheduleOutput{}, err
	}

	events := views.DayEvents(in, date, time.Now())
	out := GetDayScheduleOutput{Date: input.Date, Events: make([]DayEventOutput, len(events))}
	for i, e := range events {
		out.Events[i] = DayEventOutput{
			Source:   e.Source,
			Title:    e.Title,
			Subtitle: e.Subtitle,
			Urgency:  e.Urgency.String(),
			Days:     e.Days,
		}
	}
	return nil, out, nil
}
