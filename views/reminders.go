// ABOUTME: Reminder surface derivation across customers, goals, family and KIV
// ABOUTME: Produces four independent lists with tagged navigation intents

package views

import (
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

// NavKind tags where a reminder's "go to" action should land. A small
// switch over these replaces the dynamic dispatch of earlier versions.
type NavKind int

const (
	OpenCustomer NavKind = iota
	OpenGoal
	OpenFamily
	OpenKIV
)

func (k NavKind) String() string {
	switch k {
	case OpenCustomer:
		return "customer"
	case OpenGoal:
		return "goal"
	case OpenFamily:
		return "family"
	case OpenKIV:
		return "kiv"
	}
	return "unknown"
}

// NavIntent is the record a reminder navigates to when followed.
type NavIntent struct {
	Kind NavKind
	ID   string
}

// Reminder is one actionable entry on the reminder surface.
type Reminder struct {
	Title   string
	Details string
	Nav     NavIntent
	// CanPromote marks reminders that support the promote-to-monthly
	// action: marketable family members and due KIV items.
	CanPromote bool
}

// Reminders holds the four derived lists, recomputed on demand.
type Reminders struct {
	MissingBeneficiaries    []Reminder
	UncompletedGoals        []Reminder
	MarketableOpportunities []Reminder
	KIVDueMeetings          []Reminder
}

// RemindersInput carries the repositories the reminder surface reads.
type RemindersInput struct {
	Customers []models.Customer
	Goals     []models.Goal
	Family    []models.FamilyMember
	KIV       []models.KIVItem
}

// BuildReminders derives all four reminder lists at once.
func BuildReminders(in RemindersInput, now time.Time) Reminders {
	var r Reminders

	for _, c := range in.Customers {
		if c.Beneficiary != "No" {
			continue
		}
		r.MissingBeneficiaries = append(r.MissingBeneficiaries, Reminder{
			Title:   fmt.Sprintf("%s (%s)", c.LifeAssuredName, c.IDNumber),
			Details: fmt.Sprintf("policy %s | %s", c.PolicyNumber, c.PolicyType),
			Nav:     NavIntent{Kind: OpenCustomer, ID: c.ID},
		})
	}

	for _, g := range in.Goals {
		if g.Completed() || !g.DueDate.Valid || g.DueDate.Time.Before(now) {
			continue
		}
		days := daysUntil(now, g.DueDate.Time)
		r.UncompletedGoals = append(r.UncompletedGoals, Reminder{
			Title: g.Title,
			Details: fmt.Sprintf("RM %.0f to go | due %s (%dd)",
				g.Remaining(), g.DueDate.Date(), days),
			Nav: NavIntent{Kind: OpenGoal, ID: g.ID},
		})
	}

	for _, m := range in.Family {
		if m.IsExistingCustomer {
			continue
		}
		details := "relationship: " + m.Relationship
		if m.Phone != "" {
			details += " | phone: " + m.Phone
		}
		r.MarketableOpportunities = append(r.MarketableOpportunities, Reminder{
			Title:      m.Name,
			Details:    details,
			Nav:        NavIntent{Kind: OpenFamily, ID: m.ID},
			CanPromote: true,
		})
	}

	for _, k := range in.KIV {
		if !k.NextMeeting.Valid {
			continue
		}
		// Within the next week only. Overdue meetings fall outside the
		// window: daysUntil goes negative and the item drops off the list.
		days := daysUntil(now, k.NextMeeting.Time)
		if days < 0 || days > 7 {
			continue
		}
		r.KIVDueMeetings = append(r.KIVDueMeetings, Reminder{
			Title: k.Name,
			Details: fmt.Sprintf("next meeting %s (%dd)",
				k.NextMeeting.String(), days),
			Nav:        NavIntent{Kind: OpenKIV, ID: k.ID},
			CanPromote: true,
		})
	}

	return r
}
