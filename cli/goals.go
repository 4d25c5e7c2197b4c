// ABOUTME: Goal CLI commands
// ABOUTME: Goal CRUD, progress updates, and the completion banner

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
	"github.com/jiale-0528/mgr-sop/views"
)

// AddGoalCommand adds a production goal.
func AddGoalCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-goal", flag.ExitOnError)
	goalType := fs.String("type", models.GoalCustom, "Goal type: supremacy, mdrt, gspc, or custom")
	title := fs.String("title", "", "Goal title (required)")
	amount := fs.Float64("amount", 0, "Target amount (RM, required)")
	current := fs.Float64("current", 0, "Current progress (RM)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	color := fs.String("color", "", "Calendar indicator color")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *amount <= 0 {
		return fmt.Errorf("--amount must be positive")
	}

	goal := &models.Goal{
		Type:    *goalType,
		Title:   *title,
		Amount:  *amount,
		Current: *current,
		DueDate: models.ParseDateTime(*due),
		Color:   *color,
	}
	if *due != "" && !goal.DueDate.Valid {
		return fmt.Errorf("invalid due date %q", *due)
	}

	if err := store.PutGoal(goal); err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	Successf("Goal created: %s (RM %.0f)", goal.Title, goal.Amount)
	return nil
}

// ListGoalsCommand lists goals and the banner state.
func ListGoalsCommand(store *db.Store, args []string) error {
	goals, err := store.ListGoals()
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	if len(goals) == 0 {
		fmt.Println("No goals set")
		return nil
	}

	banner := views.BuildGoalBanner(goals)
	if banner.Show {
		Successf("Completed: %s (RM %.0f)", banner.MostRecent.Title, banner.MostRecent.Current)
		if banner.AllCompleted {
			Successf("All goals completed!")
		} else {
			Faintf("Next: %s, RM %.0f to go", banner.NextGoal.Title, banner.NextRemaining)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TITLE\tTYPE\tTARGET\tCURRENT\tPROGRESS\tDUE\tID")
	_, _ = fmt.Fprintln(w, "-----\t----\t------\t-------\t--------\t---\t--")
	for _, g := range goals {
		due := g.DueDate.Date()
		if due == "" {
			due = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\tRM %.0f\tRM %.0f\t%.0f%%\t%s\t%s\n",
			g.Title, g.Type, g.Amount, g.Current, g.Progress()*100, due, shortID(g.ID))
	}
	_ = w.Flush()
	return nil
}

// UpdateGoalCommand updates progress or details on a goal.
// Flags must come before the goal ID.
func UpdateGoalCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("update-goal", flag.ExitOnError)
	title := fs.String("title", "", "Goal title")
	amount := fs.Float64("amount", -1, "Target amount (RM)")
	current := fs.Float64("current", -1, "Current progress (RM)")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("goal ID is required")
	}
	goal, err := store.GetGoal(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("goal not found")
	}

	wasCompleted := goal.Completed()
	if *title != "" {
		goal.Title = *title
	}
	if *amount >= 0 {
		goal.Amount = *amount
	}
	if *current >= 0 {
		goal.Current = *current
	}
	if *due != "" {
		d := models.ParseDateTime(*due)
		if !d.Valid {
			return fmt.Errorf("invalid due date %q", *due)
		}
		goal.DueDate = d
	}

	if err := store.PutGoal(goal); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	Successf("Goal updated: %s (RM %.0f / RM %.0f)", goal.Title, goal.Current, goal.Amount)
	if !wasCompleted && goal.Completed() {
		Successf("Goal completed: %s", goal.Title)
	}
	return nil
}

// DeleteGoalCommand removes a goal.
func DeleteGoalCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("goal ID is required")
	}
	goal, err := store.GetGoal(args[0])
	if err != nil {
		return fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("goal not found")
	}
	if err := store.DeleteGoal(args[0]); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	Successf("Goal deleted: %s", goal.Title)
	return nil
}
