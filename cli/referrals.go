// ABOUTME: Referral CLI commands
// ABOUTME: Referral CRUD and meeting progress tracking

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

// AddReferralCommand records a referred prospect.
func AddReferralCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-referral", flag.ExitOnError)
	name := fs.String("name", "", "Referred prospect name (required)")
	from := fs.String("from", "", "Who made the referral (required)")
	age := fs.Float64("age", 0, "Age")
	first := fs.String("first-meeting", "", "First meeting date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *from == "" {
		return fmt.Errorf("--from is required")
	}

	referral := &models.Referral{
		Name:             *name,
		From:             *from,
		FirstMeetingDate: *first,
	}
	if *age > 0 {
		referral.Age = models.AgeOf(*age)
	}

	if err := store.PutReferral(referral); err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	Successf("Referral recorded: %s (from %s)", referral.Name, referral.From)
	return nil
}

// ListReferralsCommand lists referrals.
func ListReferralsCommand(store *db.Store, args []string) error {
	referrals, err := store.ListReferrals()
	if err != nil {
		return fmt.Errorf("failed to list referrals: %w", err)
	}
	if len(referrals) == 0 {
		fmt.Println("No referrals recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tFROM\tFIRST MEETING\tLAST MEETING\tOUTCOME\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t-------------\t------------\t-------\t--")
	for _, r := range referrals {
		first := r.FirstMeetingDate
		if first == "" {
			first = "-"
		}
		last := r.LastMeetingDate
		if last == "" {
			last = "-"
		}
		outcome := r.Outcome
		if outcome == "" {
			outcome = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.From, first, last, outcome, shortID(r.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d referral(s)\n", len(referrals))
	return nil
}

// UpdateReferralCommand records meeting dates or outcomes.
// Flags must come before the referral ID.
func UpdateReferralCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("update-referral", flag.ExitOnError)
	first := fs.String("first-meeting", "", "First meeting date (YYYY-MM-DD)")
	last := fs.String("last-meeting", "", "Last meeting date (YYYY-MM-DD)")
	outcome := fs.String("outcome", "", "Outcome notes")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("referral ID is required")
	}
	referral, err := store.GetReferral(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to get referral: %w", err)
	}
	if referral == nil {
		return fmt.Errorf("referral not found")
	}

	if *first != "" {
		referral.FirstMeetingDate = *first
	}
	if *last != "" {
		referral.LastMeetingDate = *last
	}
	if *outcome != "" {
		referral.Outcome = *outcome
	}

	if err := store.PutReferral(referral); err != nil {
		return fmt.Errorf("failed to update referral: %w", err)
	}
	Successf("Referral updated: %s", referral.Name)
	return nil
}

// DeleteReferralCommand removes a referral.
func DeleteReferralCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("referral ID is required")
	}
	referral, err := store.GetReferral(args[0])
	if err != nil {
		return fmt.Errorf("failed to get referral: %w", err)
	}
	if referral == nil {
		return fmt.Errorf("referral not found")
	}
	if err := store.DeleteReferral(args[0]); err != nil {
		return fmt.Errorf("failed to delete referral: %w", err)
	}
	Successf("Referral deleted: %s", referral.Name)
	return nil
}
