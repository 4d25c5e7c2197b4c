// ABOUTME: Tests for the coverage gap report
// ABOUTME: Verifies identity grouping, aggregate thresholds and input validation

package views

import (
	"testing"

	"github.com/jiale-0528/mgr-sop/models"
)

func TestCoverageGapAggregatesByIdentity(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", LifeAssuredName: "Tan", IDNumber: "900101-14-1111",
			Coverage: models.Coverage{Life: 50000}},
		{ID: "2", LifeAssuredName: "Tan", IDNumber: "900101-14-1111",
			Coverage: models.Coverage{Life: 50000}},
		{ID: "3", LifeAssuredName: "Lim", IDNumber: "850505-10-2222",
			Coverage: models.Coverage{Life: 80000}},
		{ID: "4", LifeAssuredName: "Lim", IDNumber: "850505-10-2222",
			Coverage: models.Coverage{Life: 120000}},
	}

	rows, err := CoverageGap(customers, models.CoverageLife, 150000)
	if err != nil {
		t.Fatalf("CoverageGap failed: %v", err)
	}

	// Tan totals 100k -> gapped, both rows appear. Lim totals 200k -> not gapped.
	if len(rows) != 2 {
		t.Fatalf("expected 2 gapped rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.IDNumber != "900101-14-1111" {
			t.Errorf("unexpected identity in gap report: %s", r.IDNumber)
		}
		if r.GroupTotal != 100000 {
			t.Errorf("expected group total 100000, got %v", r.GroupTotal)
		}
	}
}

func TestCoverageGapMissingIDNumberIsOwnGroup(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", LifeAssuredName: "A", Coverage: models.Coverage{Life: 10000}},
		{ID: "2", LifeAssuredName: "B", Coverage: models.Coverage{Life: 10000}},
	}
	rows, err := CoverageGap(customers, models.CoverageLife, 15000)
	if err != nil {
		t.Fatalf("CoverageGap failed: %v", err)
	}
	// Without an idNumber the rows must not be summed together.
	if len(rows) != 2 {
		t.Fatalf("expected both singleton rows gapped, got %d", len(rows))
	}
	for _, r := range rows {
		if r.GroupTotal != 10000 {
			t.Errorf("singleton group total should be 10000, got %v", r.GroupTotal)
		}
	}
}

func TestCoverageGapExactThresholdNotGapped(t *testing.T) {
	customers := []models.Customer{
		{ID: "1", IDNumber: "x", Coverage: models.Coverage{Illness: 200000}},
	}
	rows, err := CoverageGap(customers, models.CoverageIllness, 200000)
	if err != nil {
		t.Fatalf("CoverageGap failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("meeting the threshold exactly is not a gap, got %d rows", len(rows))
	}
}

func TestCoverageGapValidation(t *testing.T) {
	if _, err := CoverageGap(nil, "dental", 100); err == nil {
		t.Error("unknown category should error")
	}
	if _, err := CoverageGap(nil, models.CoverageLife, -5); err == nil {
		t.Error("negative threshold should error")
	}
}
