// ABOUTME: Reminder CLI command
// ABOUTME: Prints the four derived reminder lists with promote hints

package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/views"
)

// RemindersCommand prints the reminder surface.
func RemindersCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("reminders", flag.ExitOnError)
	kind := fs.String("kind", "", "Show one list: beneficiaries, goals, marketable, or kiv")
	_ = fs.Parse(args)

	var in views.RemindersInput
	var err error
	if in.Customers, err = store.ListCustomers(); err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	if in.Goals, err = store.ListGoals(); err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	if in.Family, err = store.ListFamily(); err != nil {
		return fmt.Errorf("failed to load family members: %w", err)
	}
	if in.KIV, err = store.ListKIV(); err != nil {
		return fmt.Errorf("failed to load KIV items: %w", err)
	}

	r := views.BuildReminders(in, time.Now())

	printList := func(heading string, list []views.Reminder) {
		fmt.Printf("%s (%d)\n", heading, len(list))
		if len(list) == 0 {
			Faintf("nothing here")
			fmt.Println()
			return
		}
		for _, item := range list {
			fmt.Printf("  • %s\n", item.Title)
			if item.Details != "" {
				Faintf("  %s", item.Details)
			}
			if item.CanPromote {
				Faintf("  promote: mgr crm promote-%s %s", item.Nav.Kind, item.Nav.ID)
			}
		}
		fmt.Println()
	}

	switch *kind {
	case "":
		printList("Missing beneficiaries", r.MissingBeneficiaries)
		printList("Uncompleted goals", r.UncompletedGoals)
		printList("Marketable opportunities", r.MarketableOpportunities)
		printList("KIV meetings this week", r.KIVDueMeetings)
	case "beneficiaries":
		printList("Missing beneficiaries", r.MissingBeneficiaries)
	case "goals":
		printList("Uncompleted goals", r.UncompletedGoals)
	case "marketable":
		printList("Marketable opportunities", r.MarketableOpportunities)
	case "kiv":
		printList("KIV meetings this week", r.KIVDueMeetings)
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}
	return nil
}
