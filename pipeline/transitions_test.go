// ABOUTME: Tests for pipeline lifecycle transitions
// ABOUTME: Covers promotion idempotency and both monthly close-out paths

package pipeline

import (
	"testing"
	"time"

	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

func newTestEngine(t *testing.T) (*Engine, *db.Store) {
	t.Helper()
	client, cleanup := charm.NewTestClient(t)
	t.Cleanup(cleanup)
	store := db.NewStore(client, "A123")
	return New(store), store
}

func TestPromoteFamilyMemberIsIdempotent(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

	member := &models.FamilyMember{Name: "Lim Wei", Relationship: "brother"}
	if err := store.PutFamilyMember(member); err != nil {
		t.Fatalf("PutFamilyMember failed: %v", err)
	}

	first, err := engine.PromoteFamilyMember(member.ID, now)
	if err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if first.AlreadyExists {
		t.Fatal("first promotion should create")
	}
	if first.Item.PolicyType != DefaultPolicyType {
		t.Errorf("expected default policy type, got %s", first.Item.PolicyType)
	}
	want := now.AddDate(0, 0, 7)
	if !first.Item.Appointment.Time.Equal(want) {
		t.Errorf("expected appointment %s, got %s", want, first.Item.Appointment.Time)
	}

	second, err := engine.PromoteFamilyMember(member.ID, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second promotion failed: %v", err)
	}
	if !second.AlreadyExists {
		t.Fatal("second promotion should find the existing item")
	}
	if second.Item.ID != first.Item.ID {
		t.Error("second promotion must point at the same record")
	}

	items, err := store.ListMonthly()
	if err != nil {
		t.Fatalf("ListMonthly failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 pipeline item, got %d", len(items))
	}

	// Promotion is a move: the family record is gone.
	gone, err := store.GetFamilyMember(member.ID)
	if err != nil {
		t.Fatalf("GetFamilyMember failed: %v", err)
	}
	if gone != nil {
		t.Error("family member must be deleted on promotion")
	}
}

func TestPromoteKIVItemCarriesMeeting(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	meeting := now.AddDate(0, 0, 3)

	kiv := &models.KIVItem{
		Name:        "Wong",
		PolicyType:  "medical card",
		Premium:     2400,
		NextMeeting: models.DT(meeting),
	}
	if err := store.PutKIVItem(kiv); err != nil {
		t.Fatalf("PutKIVItem failed: %v", err)
	}

	res, err := engine.PromoteKIVItem(kiv.ID, now)
	if err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if res.Item.PolicyType != "medical card" || res.Item.Premium != 2400 {
		t.Errorf("promotion should carry policy details: %+v", res.Item)
	}
	if !res.Item.Appointment.Time.Equal(meeting) {
		t.Errorf("appointment should come from the scheduled meeting, got %s", res.Item.Appointment.Time)
	}

	gone, err := store.GetKIVItem(kiv.ID)
	if err != nil {
		t.Fatalf("GetKIVItem failed: %v", err)
	}
	if gone != nil {
		t.Error("KIV item must be deleted on promotion")
	}
}

func TestMonthlyToCustomerNewIdentity(t *testing.T) {
	engine, store := newTestEngine(t)

	item := &models.MonthlyItem{
		Name:        "Tan Mei Ling",
		IDNumber:    "880101-14-5566",
		PolicyType:  "life plan",
		Premium:     3600,
		Appointment: models.DT(time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)),
	}
	if err := store.PutMonthlyItem(item); err != nil {
		t.Fatalf("PutMonthlyItem failed: %v", err)
	}

	res, err := engine.MonthlyToCustomer(item.ID)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if res.AddPolicyTo != nil {
		t.Fatal("no existing identity should match")
	}
	if res.Draft == nil {
		t.Fatal("expected a prefilled draft")
	}
	if res.Draft.Beneficiary != "No" {
		t.Errorf("draft beneficiary defaults to No, got %s", res.Draft.Beneficiary)
	}
	if res.Draft.EffectiveDate != "2026-03-10" {
		t.Errorf("effective date should come from the appointment, got %s", res.Draft.EffectiveDate)
	}

	// The conversion is destructive: the pipeline item is gone.
	gone, err := store.GetMonthlyItem(item.ID)
	if err != nil {
		t.Fatalf("GetMonthlyItem failed: %v", err)
	}
	if gone != nil {
		t.Error("monthly item must be deleted on conversion")
	}
}

func TestMonthlyToCustomerExistingIdentity(t *testing.T) {
	engine, store := newTestEngine(t)

	existing := &models.Customer{
		LifeAssuredName: "Tan Mei Ling",
		IDNumber:        "880101-14-5566",
	}
	if err := store.PutCustomer(existing); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}
	item := &models.MonthlyItem{Name: "Tan Mei Ling", IDNumber: "880101-14-5566"}
	if err := store.PutMonthlyItem(item); err != nil {
		t.Fatalf("PutMonthlyItem failed: %v", err)
	}

	res, err := engine.MonthlyToCustomer(item.ID)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if res.AddPolicyTo == nil || res.AddPolicyTo.ID != existing.ID {
		t.Fatalf("expected the existing identity, got %+v", res.AddPolicyTo)
	}
	if res.Draft != nil {
		t.Error("no draft when an identity matched")
	}
}

func TestMonthlyToKIVRecycles(t *testing.T) {
	engine, store := newTestEngine(t)
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	appointment := time.Date(2026, time.February, 20, 15, 0, 0, 0, time.UTC)

	item := &models.MonthlyItem{
		Name:        "Wong",
		PolicyType:  "medical card",
		Premium:     2400,
		Appointment: models.DT(appointment),
		Outcome:     "wants to think it over",
	}
	if err := store.PutMonthlyItem(item); err != nil {
		t.Fatalf("PutMonthlyItem failed: %v", err)
	}

	kiv, err := engine.MonthlyToKIV(item.ID, now)
	if err != nil {
		t.Fatalf("recycle failed: %v", err)
	}
	if !kiv.LastMeeting.Time.Equal(appointment) {
		t.Errorf("last meeting should be the appointment, got %s", kiv.LastMeeting.Time)
	}
	if !kiv.NextMeeting.Time.Equal(appointment.AddDate(0, 0, 30)) {
		t.Errorf("next meeting should be 30 days later, got %s", kiv.NextMeeting.Time)
	}
	if kiv.Reason != "wants to think it over" {
		t.Errorf("reason should carry the outcome, got %s", kiv.Reason)
	}

	gone, err := store.GetMonthlyItem(item.ID)
	if err != nil {
		t.Fatalf("GetMonthlyItem failed: %v", err)
	}
	if gone != nil {
		t.Error("monthly item must be deleted on recycle")
	}
}
