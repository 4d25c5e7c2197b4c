// ABOUTME: Goal completion banner computation
// ABOUTME: Partitions goals and selects the latest win and the next target

package views

import (
	"github.com/jiale-0528/mgr-sop/models"
)

// GoalBanner is the derived state behind the goals-page banner.
type GoalBanner struct {
	// Show is true when at least one goal is completed.
	Show bool

	// MostRecent is the completed goal with the highest current value,
	// treated as the latest win. Ties keep the first encountered.
	MostRecent *models.Goal

	// NextGoal is the incomplete goal with the highest progress ratio,
	// nil when every goal is done.
	NextGoal *models.Goal

	// NextRemaining is the amount still needed on NextGoal.
	NextRemaining float64

	// AllCompleted marks the celebratory terminal state.
	AllCompleted bool
}

// BuildGoalBanner derives the banner from the full goal list.
func BuildGoalBanner(goals []models.Goal) GoalBanner {
	var banner GoalBanner

	var completed, incomplete []models.Goal
	for _, g := range goals {
		if g.Completed() {
			completed = append(completed, g)
		} else {
			incomplete = append(incomplete, g)
		}
	}

	if len(completed) == 0 {
		return banner
	}
	banner.Show = true

	recent := completed[0]
	for _, g := range completed[1:] {
		if g.Current > recent.Current {
			recent = g
		}
	}
	banner.MostRecent = &recent

	if len(incomplete) == 0 {
		banner.AllCompleted = true
		return banner
	}

	next := incomplete[0]
	for _, g := range incomplete[1:] {
		if g.Progress() > next.Progress() {
			next = g
		}
	}
	banner.NextGoal = &next
	banner.NextRemaining = next.Remaining()
	return banner
}
