// ABOUTME: Coverage-gap query over customer policy rows
// ABOUTME: Aggregates coverage per identity before filtering against a threshold

package views

import (
	"fmt"

	"github.com/jiale-0528/mgr-sop/models"
)

// CoverageGapRow is a policy row annotated with its identity group's
// combined coverage for the queried category.
type CoverageGapRow struct {
	models.Customer
	GroupTotal float64
}

// CoverageGap returns every policy row belonging to an identity whose
// combined coverage in the given category falls strictly below threshold.
//
// Rows are grouped by idNumber; rows without one form singleton groups
// keyed by their own id. This is an aggregate-then-filter query: a customer
// holding two RM50,000 policies passes an RM80,000 threshold even though
// neither row does on its own.
func CoverageGap(customers []models.Customer, category string, threshold float64) ([]CoverageGapRow, error) {
	if !validCoverageCategory(category) {
		return nil, fmt.Errorf("unknown coverage category %q", category)
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("coverage threshold must be greater than zero")
	}

	// Group rows by identity, preserving first-seen group order so results
	// come back in a stable, insertion-like order.
	groups := make(map[string][]models.Customer)
	var order []string
	for _, c := range customers {
		key := c.IDNumber
		if key == "" {
			key = "row:" + c.ID
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c)
	}

	var gapped []CoverageGapRow
	for _, key := range order {
		rows := groups[key]
		var total float64
		for _, c := range rows {
			total += c.Coverage.Amount(category)
		}
		if total < threshold {
			for _, c := range rows {
				gapped = append(gapped, CoverageGapRow{Customer: c, GroupTotal: total})
			}
		}
	}
	return gapped, nil
}

func validCoverageCategory(category string) bool {
	for _, c := range models.CoverageCategories {
		if c == category {
			return true
		}
	}
	return false
}
