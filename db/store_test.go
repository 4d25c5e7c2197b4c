// ABOUTME: Tests for the agent-scoped collection store and repositories
// ABOUTME: Runs against an isolated badger-backed test client

package db

import (
	"strings"
	"testing"

	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	client, cleanup := charm.NewTestClient(t)
	t.Cleanup(cleanup)
	return NewStore(client, "A123")
}

func TestCustomerCRUD(t *testing.T) {
	store := newTestStore(t)

	c := &models.Customer{
		LifeAssuredName: "Tan Mei Ling",
		ProposerName:    "Tan Mei Ling",
		IDNumber:        "880101-14-5566",
		PolicyNumber:    "P-1001",
		PremiumAmount:   3600,
		Beneficiary:     "No",
	}
	if err := store.PutCustomer(c); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}
	if c.ID == "" {
		t.Fatal("id was not assigned")
	}
	if c.CreatedAt.IsZero() {
		t.Fatal("createdAt was not stamped")
	}

	got, err := store.GetCustomer(c.ID)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if got == nil || got.LifeAssuredName != "Tan Mei Ling" {
		t.Fatalf("unexpected customer: %+v", got)
	}

	got.PremiumAmount = 4200
	if err := store.PutCustomer(got); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	all, err := store.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert must not duplicate, got %d rows", len(all))
	}
	if all[0].PremiumAmount != 4200 {
		t.Errorf("update did not persist, premium %v", all[0].PremiumAmount)
	}

	if err := store.DeleteCustomer(c.ID); err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}
	gone, err := store.GetCustomer(c.ID)
	if err != nil {
		t.Fatalf("GetCustomer failed: %v", err)
	}
	if gone != nil {
		t.Error("customer should be gone")
	}

	// Deleting again is a no-op.
	if err := store.DeleteCustomer(c.ID); err != nil {
		t.Errorf("deleting a missing id should not error: %v", err)
	}
}

func TestAgentNamespacing(t *testing.T) {
	client, cleanup := charm.NewTestClient(t)
	t.Cleanup(cleanup)

	a := NewStore(client, "A1")
	b := NewStore(client, "B2")

	if err := a.PutCustomer(&models.Customer{LifeAssuredName: "Mine"}); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}

	other, err := b.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("agent B must not see agent A's records, got %d", len(other))
	}
}

func TestSearchCustomers(t *testing.T) {
	store := newTestStore(t)
	rows := []*models.Customer{
		{LifeAssuredName: "Tan Mei Ling", IDNumber: "880101-14-5566"},
		{LifeAssuredName: "Lim Wei", PolicyNumber: "P-2002"},
	}
	for _, r := range rows {
		if err := store.PutCustomer(r); err != nil {
			t.Fatalf("PutCustomer failed: %v", err)
		}
	}

	found, err := store.SearchCustomers("mei")
	if err != nil {
		t.Fatalf("SearchCustomers failed: %v", err)
	}
	if len(found) != 1 || found[0].LifeAssuredName != "Tan Mei Ling" {
		t.Errorf("case-insensitive name search failed: %+v", found)
	}

	found, err = store.SearchCustomers("p-2002")
	if err != nil {
		t.Fatalf("SearchCustomers failed: %v", err)
	}
	if len(found) != 1 || found[0].LifeAssuredName != "Lim Wei" {
		t.Errorf("policy number search failed: %+v", found)
	}

	all, err := store.SearchCustomers("")
	if err != nil {
		t.Fatalf("SearchCustomers failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("empty term should return everything, got %d", len(all))
	}
}

func TestFindMonthlyBySource(t *testing.T) {
	store := newTestStore(t)
	item := &models.MonthlyItem{
		Name:       "Lim Wei",
		SourceType: models.SourceKIV,
		SourceID:   "kiv-1",
	}
	if err := store.PutMonthlyItem(item); err != nil {
		t.Fatalf("PutMonthlyItem failed: %v", err)
	}

	found, err := store.FindMonthlyBySource(models.SourceKIV, "kiv-1")
	if err != nil {
		t.Fatalf("FindMonthlyBySource failed: %v", err)
	}
	if found == nil || found.ID != item.ID {
		t.Fatalf("expected the promoted item, got %+v", found)
	}

	miss, err := store.FindMonthlyBySource(models.SourceMarketable, "kiv-1")
	if err != nil {
		t.Fatalf("FindMonthlyBySource failed: %v", err)
	}
	if miss != nil {
		t.Error("source type must be part of the provenance key")
	}
}

func TestCombineVisits(t *testing.T) {
	store := newTestStore(t)
	v1 := &models.Visit{Date: "2026-03-01", Name: "Tan", Source: "referral", OPF: "O", Referral: "Yes"}
	v2 := &models.Visit{Date: "2026-03-02", Name: "Lim", Source: "cold", OPF: "P", Referral: "No"}
	for _, v := range []*models.Visit{v1, v2} {
		if err := store.PutVisit(v); err != nil {
			t.Fatalf("PutVisit failed: %v", err)
		}
	}

	report, err := store.CombineVisits([]string{v2.ID, v1.ID})
	if err != nil {
		t.Fatalf("CombineVisits failed: %v", err)
	}
	// Selection order, not storage order.
	if want := "Visit 1: Lim (2026-03-02)"; !strings.Contains(report, want) {
		t.Errorf("report missing %q:\n%s", want, report)
	}
	if want := "Visit 2: Tan (2026-03-01)"; !strings.Contains(report, want) {
		t.Errorf("report missing %q:\n%s", want, report)
	}

	if _, err := store.CombineVisits([]string{"nope"}); err == nil {
		t.Error("combining no matching visits should error")
	}
}

func TestQuadrantCells(t *testing.T) {
	store := newTestStore(t)

	if err := store.SaveAction(models.ActionCell{
		Month: "2026-03", Week: "W2", NOA: 5, NOP: 3, NOC: 1, NOR: 2,
	}); err != nil {
		t.Fatalf("SaveAction failed: %v", err)
	}
	if err := store.SavePreparation(models.PreparationCell{
		Month: "2026-03", Inventory: "20 warm prospects",
	}); err != nil {
		t.Fatalf("SavePreparation failed: %v", err)
	}

	q, err := store.GetQuadrant()
	if err != nil {
		t.Fatalf("GetQuadrant failed: %v", err)
	}
	cell, ok := q.Action["2026-03-W2"]
	if !ok {
		t.Fatal("action cell not keyed by month-week")
	}
	if cell.NOA != 5 || cell.NOC != 1 {
		t.Errorf("unexpected action cell: %+v", cell)
	}
	if q.LastUpdate.IsZero() {
		t.Error("lastUpdate should be stamped")
	}
	if latest := LatestAction(q); latest == nil || latest.Week != "W2" {
		t.Errorf("LatestAction wrong: %+v", latest)
	}
}
