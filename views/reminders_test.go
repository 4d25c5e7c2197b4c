// ABOUTME: Tests for the reminder surface derivation
// ABOUTME: Covers the four predicates and the one-week KIV window boundaries

package views

import (
	"testing"
	"time"

	"github.com/jiale-0528/mgr-sop/models"
)

func TestRemindersMissingBeneficiaries(t *testing.T) {
	in := RemindersInput{Customers: []models.Customer{
		{ID: "1", LifeAssuredName: "Tan", Beneficiary: "No"},
		{ID: "2", LifeAssuredName: "Lim", Beneficiary: "Yes"},
		{ID: "3", LifeAssuredName: "Wong", Beneficiary: ""},
	}}
	r := BuildReminders(in, time.Now())
	// Only the explicit "No" counts; empty means the question was never asked.
	if len(r.MissingBeneficiaries) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(r.MissingBeneficiaries))
	}
	if r.MissingBeneficiaries[0].Nav.Kind != OpenCustomer {
		t.Error("beneficiary reminder should navigate to the customer")
	}
}

func TestRemindersUncompletedGoals(t *testing.T) {
	now := date(2026, time.March, 1)
	in := RemindersInput{Goals: []models.Goal{
		{ID: "1", Title: "due soon", Amount: 100, Current: 50,
			DueDate: models.DT(date(2026, time.March, 20))},
		{ID: "2", Title: "completed", Amount: 100, Current: 100,
			DueDate: models.DT(date(2026, time.March, 20))},
		{ID: "3", Title: "overdue", Amount: 100, Current: 10,
			DueDate: models.DT(date(2026, time.February, 1))},
	}}
	r := BuildReminders(in, now)
	if len(r.UncompletedGoals) != 1 {
		t.Fatalf("expected 1 goal reminder, got %d", len(r.UncompletedGoals))
	}
	if r.UncompletedGoals[0].Title != "due soon" {
		t.Errorf("wrong goal reminded: %s", r.UncompletedGoals[0].Title)
	}
}

func TestRemindersMarketableFamily(t *testing.T) {
	in := RemindersInput{Family: []models.FamilyMember{
		{ID: "1", Name: "prospect", IsExistingCustomer: false},
		{ID: "2", Name: "client already", IsExistingCustomer: true},
	}}
	r := BuildReminders(in, time.Now())
	if len(r.MarketableOpportunities) != 1 {
		t.Fatalf("expected 1 marketable reminder, got %d", len(r.MarketableOpportunities))
	}
	if !r.MarketableOpportunities[0].CanPromote {
		t.Error("marketable family members are promotable")
	}
}

func TestRemindersKIVWindowBoundaries(t *testing.T) {
	now := date(2026, time.March, 10)
	cases := []struct {
		name    string
		meeting models.DateTime
		want    bool
	}{
		{"in 3 days", models.DT(date(2026, time.March, 13)), true},
		{"today", models.DT(now), true},
		{"exactly a week", models.DT(date(2026, time.March, 17)), true},
		{"in 10 days", models.DT(date(2026, time.March, 20)), false},
		{"yesterday", models.DT(date(2026, time.March, 9)), false},
		{"no meeting", models.DateTime{}, false},
	}
	for _, tc := range cases {
		in := RemindersInput{KIV: []models.KIVItem{
			{ID: "k", Name: tc.name, NextMeeting: tc.meeting},
		}}
		r := BuildReminders(in, now)
		got := len(r.KIVDueMeetings) == 1
		if got != tc.want {
			t.Errorf("%s: reminded=%v, want %v", tc.name, got, tc.want)
		}
	}
}
