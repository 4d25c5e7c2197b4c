// ABOUTME: Tests for the goal completion banner
// ABOUTME: Covers latest-win selection, next-goal progress ranking and terminal states

package views

import (
	"testing"

	"github.com/jiale-0528/mgr-sop/models"
)

func TestGoalBannerNoCompleted(t *testing.T) {
	banner := BuildGoalBanner([]models.Goal{
		{Title: "MDRT", Amount: 100000, Current: 50000},
	})
	if banner.Show {
		t.Error("banner should stay hidden with no completed goals")
	}
}

func TestGoalBannerPicksHighestCurrentAndBestProgress(t *testing.T) {
	goals := []models.Goal{
		{Title: "A", Amount: 10000, Current: 12000},  // completed
		{Title: "B", Amount: 50000, Current: 60000},  // completed, higher current
		{Title: "C", Amount: 100000, Current: 30000}, // 30%
		{Title: "D", Amount: 100000, Current: 80000}, // 80% -> next
	}

	banner := BuildGoalBanner(goals)
	if !banner.Show {
		t.Fatal("banner should show")
	}
	if banner.MostRecent.Title != "B" {
		t.Errorf("expected most recent win B, got %s", banner.MostRecent.Title)
	}
	if banner.NextGoal.Title != "D" {
		t.Errorf("expected next goal D, got %s", banner.NextGoal.Title)
	}
	if banner.NextRemaining != 20000 {
		t.Errorf("expected RM 20000 remaining, got %v", banner.NextRemaining)
	}
	if banner.AllCompleted {
		t.Error("not all goals are completed")
	}
}

func TestGoalBannerAllCompleted(t *testing.T) {
	banner := BuildGoalBanner([]models.Goal{
		{Title: "A", Amount: 10000, Current: 10000},
		{Title: "B", Amount: 5000, Current: 9000},
	})
	if !banner.AllCompleted {
		t.Error("expected the all-completed state")
	}
	if banner.NextGoal != nil {
		t.Error("no next goal when everything is done")
	}
}

func TestGoalBannerTieKeepsFirst(t *testing.T) {
	banner := BuildGoalBanner([]models.Goal{
		{Title: "First", Amount: 1000, Current: 2000},
		{Title: "Second", Amount: 1500, Current: 2000},
	})
	if banner.MostRecent.Title != "First" {
		t.Errorf("tie on current should keep the first goal, got %s", banner.MostRecent.Title)
	}
}
