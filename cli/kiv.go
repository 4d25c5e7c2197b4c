// ABOUTME: KIV (keep-in-view) CLI commands
// ABOUTME: Follow-up queue CRUD and promotion into the monthly pipeline

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
	"github.com/jiale-0528/mgr-sop/pipeline"
)

// AddKIVCommand parks a prospect in the KIV queue.
func AddKIVCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-kiv", flag.ExitOnError)
	name := fs.String("name", "", "Prospect name (required)")
	policyType := fs.String("policy-type", "", "Discussed policy plan")
	premium := fs.Float64("premium", 0, "Discussed premium (RM)")
	last := fs.String("last-meeting", "", "Last meeting (YYYY-MM-DD or with time)")
	next := fs.String("next-meeting", "", "Next follow-up (YYYY-MM-DD or with time)")
	reason := fs.String("reason", "", "Why the prospect is on hold")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	item := &models.KIVItem{
		Name:        *name,
		PolicyType:  *policyType,
		Premium:     *premium,
		LastMeeting: models.ParseDateTime(*last),
		NextMeeting: models.ParseDateTime(*next),
		Reason:      *reason,
	}
	if *next != "" && !item.NextMeeting.Valid {
		return fmt.Errorf("invalid next meeting %q", *next)
	}

	if err := store.PutKIVItem(item); err != nil {
		return fmt.Errorf("failed to create KIV item: %w", err)
	}
	Successf("KIV prospect added: %s", item.Name)
	return nil
}

// ListKIVCommand lists the follow-up queue.
func ListKIVCommand(store *db.Store, args []string) error {
	items, err := store.ListKIV()
	if err != nil {
		return fmt.Errorf("failed to list KIV items: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("KIV queue is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPOLICY\tPREMIUM\tNEXT MEETING\tREASON\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t------------\t------\t--")
	for _, k := range items {
		next := k.NextMeeting.String()
		if next == "" {
			next = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\tRM %.0f\t%s\t%s\t%s\n",
			k.Name, k.PolicyType, k.Premium, next, k.Reason, shortID(k.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d prospect(s)\n", len(items))
	return nil
}

// UpdateKIVCommand reschedules or annotates a KIV prospect.
// Flags must come before the item ID.
func UpdateKIVCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("update-kiv", flag.ExitOnError)
	next := fs.String("next-meeting", "", "Next follow-up (YYYY-MM-DD or with time)")
	last := fs.String("last-meeting", "", "Last meeting (YYYY-MM-DD or with time)")
	reason := fs.String("reason", "", "Hold reason")
	premium := fs.Float64("premium", -1, "Discussed premium (RM)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("KIV item ID is required")
	}
	item, err := store.GetKIVItem(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to get KIV item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("KIV item not found")
	}

	if *next != "" {
		d := models.ParseDateTime(*next)
		if !d.Valid {
			return fmt.Errorf("invalid next meeting %q", *next)
		}
		item.NextMeeting = d
	}
	if *last != "" {
		d := models.ParseDateTime(*last)
		if !d.Valid {
			return fmt.Errorf("invalid last meeting %q", *last)
		}
		item.LastMeeting = d
	}
	if *reason != "" {
		item.Reason = *reason
	}
	if *premium >= 0 {
		item.Premium = *premium
	}

	if err := store.PutKIVItem(item); err != nil {
		return fmt.Errorf("failed to update KIV item: %w", err)
	}
	Successf("KIV prospect updated: %s", item.Name)
	return nil
}

// DeleteKIVCommand drops a prospect from the queue.
func DeleteKIVCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("KIV item ID is required")
	}
	item, err := store.GetKIVItem(args[0])
	if err != nil {
		return fmt.Errorf("failed to get KIV item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("KIV item not found")
	}
	if err := store.DeleteKIVItem(args[0]); err != nil {
		return fmt.Errorf("failed to delete KIV item: %w", err)
	}
	Successf("KIV prospect deleted: %s", item.Name)
	return nil
}

// PromoteKIVCommand moves a KIV prospect into the monthly pipeline.
func PromoteKIVCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("KIV item ID is required")
	}

	res, err := pipeline.New(store).PromoteKIVItem(args[0], time.Now())
	if err != nil {
		return err
	}
	if res.AlreadyExists {
		Warnf("%s is already in the monthly pipeline (ID: %s)", res.Item.Name, shortID(res.Item.ID))
		return nil
	}
	Successf("Promoted to monthly pipeline: %s", res.Item.Name)
	Faintf("Appointment: %s", res.Item.Appointment.String())
	return nil
}
