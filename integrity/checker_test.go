// ABOUTME: Tests for the data integrity checker
// ABOUTME: Seeds broken collections, verifies findings, applies fixes and re-checks

package integrity

import (
	"testing"
	"time"

	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	client, cleanup := charm.NewTestClient(t)
	t.Cleanup(cleanup)
	return db.NewStore(client, "A123")
}

func findingFor(s *Session, collection, field string) *Finding {
	for i := range s.Findings {
		if s.Findings[i].Collection == collection && s.Findings[i].Field == field {
			return &s.Findings[i]
		}
	}
	return nil
}

func TestCheckCleanData(t *testing.T) {
	store := newTestStore(t)
	if err := store.PutCustomer(&models.Customer{
		LifeAssuredName: "Tan", Beneficiary: "Yes", Age: models.AgeOf(35),
	}); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(session.Findings) != 0 {
		t.Errorf("clean data should produce no findings, got %+v", session.Findings)
	}
}

func TestCheckDuplicateAndMissingIDs(t *testing.T) {
	store := newTestStore(t)
	// Write the collection raw to smuggle in broken ids.
	raw := `[
		{"id":"dup","lifeAssuredName":"A"},
		{"id":"dup","lifeAssuredName":"B"},
		{"id":"","lifeAssuredName":"C"}
	]`
	if err := store.RawWrite(db.CollCustomers, []byte(raw)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if session.Errors() != 2 {
		t.Fatalf("expected 2 id errors, got %d (%+v)", session.Errors(), session.Findings)
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	customers, err := store.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	seen := make(map[string]bool)
	for _, c := range customers {
		if c.ID == "" {
			t.Errorf("customer %s still has no id", c.LifeAssuredName)
		}
		if seen[c.ID] {
			t.Errorf("id %s still duplicated", c.ID)
		}
		seen[c.ID] = true
	}

	again, err := Check(store)
	if err != nil {
		t.Fatalf("re-check failed: %v", err)
	}
	if len(again.Findings) != 0 {
		t.Errorf("re-check should be clean, got %+v", again.Findings)
	}
}

func TestCheckDanglingFamilyReferences(t *testing.T) {
	store := newTestStore(t)
	owner := &models.Customer{LifeAssuredName: "Tan", Beneficiary: "Yes"}
	if err := store.PutCustomer(owner); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}

	ok := &models.FamilyMember{ParentCustomerID: owner.ID, Name: "fine"}
	danglingOwner := &models.FamilyMember{ParentCustomerID: "missing", Name: "orphan"}
	staleFlag := &models.FamilyMember{
		ParentCustomerID: owner.ID, Name: "stale",
		CustomerID: "gone", IsExistingCustomer: true,
	}
	for _, m := range []*models.FamilyMember{ok, danglingOwner, staleFlag} {
		if err := store.PutFamilyMember(m); err != nil {
			t.Fatalf("PutFamilyMember failed: %v", err)
		}
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	parent := findingFor(session, db.CollFamily, "parentCustomerId")
	if parent == nil || parent.Severity != SeverityError {
		t.Fatalf("dangling owner should be an error, got %+v", parent)
	}
	cust := findingFor(session, db.CollFamily, "customerId")
	if cust == nil || cust.Severity != SeverityWarning {
		t.Fatalf("stale customer link should be a warning, got %+v", cust)
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	members, err := store.ListFamily()
	if err != nil {
		t.Fatalf("ListFamily failed: %v", err)
	}
	for _, m := range members {
		switch m.Name {
		case "orphan":
			if m.ParentCustomerID != "" {
				t.Error("dangling owner link should be cleared")
			}
		case "stale":
			if m.CustomerID != "" || m.IsExistingCustomer {
				t.Error("stale customer link should be cleared and the flag dropped")
			}
		}
	}
}

func TestCheckInvalidAgeAndNegativeAmounts(t *testing.T) {
	store := newTestStore(t)
	raw := `[{
		"id":"c1","lifeAssuredName":"Tan","beneficiary":"Yes",
		"age":"abc","premiumAmount":-100,
		"coverage":{"life":-5000}
	}]`
	if err := store.RawWrite(db.CollCustomers, []byte(raw)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if session.Errors() != 0 {
		t.Errorf("these are warnings, not errors: %+v", session.Findings)
	}
	if session.Warnings() != 3 {
		t.Fatalf("expected 3 warnings (age, premium, coverage), got %d", session.Warnings())
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	customers, err := store.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	c := customers[0]
	if c.Age.Present {
		t.Error("invalid age should be cleared to null")
	}
	if c.PremiumAmount != 0 || c.Coverage.Life != 0 {
		t.Errorf("negative amounts should be zeroed: %+v", c)
	}
}

func TestCheckUnparseableDates(t *testing.T) {
	store := newTestStore(t)
	raw := `[{"id":"g1","title":"MDRT","amount":100000,"current":0,"dueDate":"someday"}]`
	if err := store.RawWrite(db.CollGoals, []byte(raw)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	f := findingFor(session, db.CollGoals, "dueDate")
	if f == nil || f.Severity != SeverityWarning {
		t.Fatalf("unparseable date should be a warning, got %+v", f)
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}
	goals, err := store.ListGoals()
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if goals[0].DueDate.Present {
		t.Error("unparseable date should be cleared to null")
	}
}

func TestCheckVisitAndReferralDates(t *testing.T) {
	store := newTestStore(t)
	if err := store.RawWrite(db.CollVisits,
		[]byte(`[{"id":"v1","name":"Tan","date":"not-a-date","source":"cold","opf":"O","referral":"No"}]`)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}
	if err := store.RawWrite(db.CollReferrals,
		[]byte(`[{"id":"r1","name":"Lim","from":"Tan","firstMeetingDate":"whenever","lastMeetingDate":"2026-13-45"}]`)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if session.Warnings() != 3 {
		t.Fatalf("expected 3 warnings (visit date, both referral dates), got %d (%+v)",
			session.Warnings(), session.Findings)
	}
	if f := findingFor(session, db.CollVisits, "date"); f == nil || !f.Fixable() {
		t.Fatalf("visit date should be a fixable finding, got %+v", f)
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}

	visits, err := store.ListVisits()
	if err != nil {
		t.Fatalf("ListVisits failed: %v", err)
	}
	// A visit's date orders the report, so the repair is today, not null.
	if want := time.Now().Format("2006-01-02"); visits[0].Date != want {
		t.Errorf("visit date should be repaired to today %s, got %q", want, visits[0].Date)
	}

	referrals, err := store.ListReferrals()
	if err != nil {
		t.Fatalf("ListReferrals failed: %v", err)
	}
	if referrals[0].FirstMeetingDate != "" || referrals[0].LastMeetingDate != "" {
		t.Errorf("referral dates should be cleared: %+v", referrals[0])
	}

	again, err := Check(store)
	if err != nil {
		t.Fatalf("re-check failed: %v", err)
	}
	if len(again.Findings) != 0 {
		t.Errorf("re-check should be clean, got %+v", again.Findings)
	}
}

func TestCheckMissingCustomerName(t *testing.T) {
	store := newTestStore(t)
	if err := store.RawWrite(db.CollCustomers,
		[]byte(`[{"id":"c1","lifeAssuredName":"","beneficiary":"Yes"}]`)); err != nil {
		t.Fatalf("RawWrite failed: %v", err)
	}

	session, err := Check(store)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	f := findingFor(session, db.CollCustomers, "lifeAssuredName")
	if f == nil || f.Severity != SeverityWarning {
		t.Fatalf("missing name should be a warning, got %+v", f)
	}
	// No value the checker could invent; the agent has to fill it in.
	if f.Fixable() {
		t.Error("missing name has no automatic fix")
	}

	if err := session.ApplyFixes(); err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}
	again, err := Check(store)
	if err != nil {
		t.Fatalf("re-check failed: %v", err)
	}
	if findingFor(again, db.CollCustomers, "lifeAssuredName") == nil {
		t.Error("unfixable finding should persist across runs")
	}
}
