// ABOUTME: Quadrant scorecard CLI commands
// ABOUTME: Shows the planning board and updates period-keyed cells

package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

// QuadrantShowCommand prints the latest state of all four quadrants.
func QuadrantShowCommand(store *db.Store, args []string) error {
	q, err := store.GetQuadrant()
	if err != nil {
		return fmt.Errorf("failed to load quadrant: %w", err)
	}

	fmt.Println("Planning scorecard")
	if !q.LastUpdate.IsZero() {
		Faintf("last updated %s", q.LastUpdate.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	if prep := db.LatestPreparation(q); prep != nil {
		fmt.Printf("Preparation (%s):\n", prep.Month)
		Faintf("%s", prep.Inventory)
	} else {
		fmt.Println("Preparation: empty")
	}
	fmt.Println()

	if act := db.LatestAction(q); act != nil {
		fmt.Printf("Action (%s %s):\n", act.Month, act.Week)
		Faintf("NOA %d | NOP %d | NOC %d | NOR %d", act.NOA, act.NOP, act.NOC, act.NOR)
		if act.Method != "" {
			Faintf("method: %s", act.Method)
		}
	} else {
		fmt.Println("Action: empty")
	}
	fmt.Println()

	fmt.Printf("Strategy cells: %d | Motivation cells: %d\n", len(q.Strategy), len(q.Motivation))
	return nil
}

// QuadrantPrepCommand updates the monthly preparation inventory.
func QuadrantPrepCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("quadrant prep", flag.ExitOnError)
	month := fs.String("month", time.Now().Format("2006-01"), "Month (YYYY-MM)")
	inventory := fs.String("inventory", "", "Prospect inventory notes (required)")
	_ = fs.Parse(args)

	if *inventory == "" {
		return fmt.Errorf("--inventory is required")
	}
	if err := store.SavePreparation(models.PreparationCell{
		Month:     *month,
		Inventory: *inventory,
	}); err != nil {
		return fmt.Errorf("failed to save preparation: %w", err)
	}
	Successf("Preparation saved for %s", *month)
	return nil
}

// QuadrantActionCommand updates a week's activity counts.
func QuadrantActionCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("quadrant action", flag.ExitOnError)
	month := fs.String("month", time.Now().Format("2006-01"), "Month (YYYY-MM)")
	week := fs.String("week", "W1", "Week within the month (W1..W5)")
	noa := fs.Int("noa", 0, "Number of appointments")
	nop := fs.Int("nop", 0, "Number of presentations")
	noc := fs.Int("noc", 0, "Number of closings")
	nor := fs.Int("nor", 0, "Number of referrals")
	method := fs.String("method", "", "Working method notes")
	_ = fs.Parse(args)

	if err := store.SaveAction(models.ActionCell{
		Month:  *month,
		Week:   *week,
		NOA:    *noa,
		NOP:    *nop,
		NOC:    *noc,
		NOR:    *nor,
		Method: *method,
	}); err != nil {
		return fmt.Errorf("failed to save action: %w", err)
	}
	Successf("Action saved for %s %s", *month, *week)
	return nil
}

// QuadrantStrategyCommand updates the monthly market strategy cell.
func QuadrantStrategyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("quadrant strategy", flag.ExitOnError)
	month := fs.String("month", time.Now().Format("2006-01"), "Month (YYYY-MM)")
	worker := fs.String("worker", "", "Worker market notes")
	student := fs.String("student", "", "Student market notes")
	family := fs.String("family", "", "Family market notes")
	homeVisit := fs.String("home-visit", "", "Home visit notes")
	direction := fs.String("direction", "", "Overall direction")
	_ = fs.Parse(args)

	if err := store.SaveStrategy(models.StrategyCell{
		Month:     *month,
		Worker:    *worker,
		Student:   *student,
		Family:    *family,
		HomeVisit: *homeVisit,
		Direction: *direction,
	}); err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}
	Successf("Strategy saved for %s", *month)
	return nil
}

// QuadrantMotivationCommand updates the monthly motivation cell.
func QuadrantMotivationCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("quadrant motivation", flag.ExitOnError)
	month := fs.String("month", time.Now().Format("2006-01"), "Month (YYYY-MM)")
	source := fs.String("source", "", "Motivation source notes (required)")
	_ = fs.Parse(args)

	if *source == "" {
		return fmt.Errorf("--source is required")
	}
	if err := store.SaveMotivation(models.MotivationCell{
		Month:  *month,
		Source: *source,
	}); err != nil {
		return fmt.Errorf("failed to save motivation: %w", err)
	}
	Successf("Motivation saved for %s", *month)
	return nil
}
