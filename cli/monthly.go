// ABOUTME: Monthly pipeline CLI commands
// ABOUTME: Pipeline CRUD plus the close-out conversions to customer or KIV

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

// AddMonthlyCommand adds a prospect straight into the monthly pipeline.
func AddMonthlyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-monthly", flag.ExitOnError)
	name := fs.String("name", "", "Prospect name (required)")
	idNumber := fs.String("id-number", "", "National ID, used to match existing customers on close")
	age := fs.Float64("age", 0, "Age")
	contact := fs.String("contact", "", "Phone number")
	policyType := fs.String("policy-type", pipeline.DefaultPolicyType, "Proposed policy plan")
	premium := fs.Float64("premium", 0, "Proposed premium (RM)")
	appointment := fs.String("appointment", "", "Appointment (YYYY-MM-DD or with time)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	item := &models.MonthlyItem{
		Name:        *name,
		IDNumber:    *idNumber,
		Contact:     *contact,
		PolicyType:  *policyType,
		Premium:     *premium,
		Appointment: models.ParseDateTime(*appointment),
	}
	if *age > 0 {
		item.Age = models.AgeOf(*age)
	}
	if *appointment != "" && !item.Appointment.Valid {
		return fmt.Errorf("invalid appointment %q", *appointment)
	}

	if err := store.PutMonthlyItem(item); err != nil {
		return fmt.Errorf("failed to create monthly item: %w", err)
	}
	Successf("Prospect added to monthly pipeline: %s", item.Name)
	return nil
}

// ListMonthlyCommand lists the current pipeline.
func ListMonthlyCommand(store *db.Store, args []string) error {
	items, err := store.ListMonthly()
	if err != nil {
		return fmt.Errorf("failed to list monthly items: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("Monthly pipeline is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPOLICY\tPREMIUM\tAPPOINTMENT\tSOURCE\tOUTCOME\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t-----------\t------\t-------\t--")
	for _, m := range items {
		appt := m.Appointment.String()
		if appt == "" {
			appt = "-"
		}
		source := m.SourceType
		if source == "" {
			source = "direct"
		}
		outcome := m.Outcome
		if outcome == "" {
			outcome = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\tRM %.0f\t%s\t%s\t%s\t%s\n",
			m.Name, m.PolicyType, m.Premium, appt, source, outcome, shortID(m.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d prospect(s)\n", len(items))
	return nil
}

// UpdateMonthlyCommand records meeting outcomes or reschedules.
// Flags must come before the item ID.
func UpdateMonthlyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("update-monthly", flag.ExitOnError)
	outcome := fs.String("outcome", "", "Meeting outcome notes")
	appointment := fs.String("appointment", "", "Appointment (YYYY-MM-DD or with time)")
	premium := fs.Float64("premium", -1, "Proposed premium (RM)")
	policyType := fs.String("policy-type", "", "Proposed policy plan")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("monthly item ID is required")
	}
	item, err := store.GetMonthlyItem(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to get monthly item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("monthly item not found")
	}

	if *outcome != "" {
		item.Outcome = *outcome
	}
	if *appointment != "" {
		d := models.ParseDateTime(*appointment)
		if !d.Valid {
			return fmt.Errorf("invalid appointment %q", *appointment)
		}
		item.Appointment = d
	}
	if *premium >= 0 {
		item.Premium = *premium
	}
	if *policyType != "" {
		item.PolicyType = *policyType
	}

	if err := store.PutMonthlyItem(item); err != nil {
		return fmt.Errorf("failed to update monthly item: %w", err)
	}
	Successf("Prospect updated: %s", item.Name)
	return nil
}

// DeleteMonthlyCommand drops a prospect from the pipeline.
func DeleteMonthlyCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("monthly item ID is required")
	}
	item, err := store.GetMonthlyItem(args[0])
	if err != nil {
		return fmt.Errorf("failed to get monthly item: %w", err)
	}
	if item == nil {
		return fmt.Errorf("monthly item not found")
	}
	if err := store.DeleteMonthlyItem(args[0]); err != nil {
		return fmt.Errorf("failed to delete monthly item: %w", err)
	}
	Successf("Prospect removed from pipeline: %s", item.Name)
	return nil
}

// CloseMonthlyCommand converts a pipeline prospect: --won creates or
// extends a customer, --lost recycles to the KIV queue.
func CloseMonthlyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("close-monthly", flag.ExitOnError)
	won := fs.Bool("won", false, "Prospect signed: convert to customer")
	lost := fs.Bool("lost", false, "Prospect declined for now: recycle to KIV")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("monthly item ID is required")
	}
	if *won == *lost {
		return fmt.Errorf("exactly one of --won or --lost is required")
	}
	id := fs.Arg(0)
	engine := pipeline.New(store)

	if *lost {
		kiv, err := engine.MonthlyToKIV(id, time.Now())
		if err != nil {
			return err
		}
		Successf("Recycled to KIV: %s", kiv.Name)
		Faintf("Next follow-up: %s", kiv.NextMeeting.String())
		return nil
	}

	res, err := engine.MonthlyToCustomer(id)
	if err != nil {
		return err
	}
	if res.AddPolicyTo != nil {
		Successf("Existing customer matched: %s (%s)",
			res.AddPolicyTo.LifeAssuredName, res.AddPolicyTo.IDNumber)
		Faintf("Add the new policy with: mgr crm add-customer --id-number %s ...", res.AddPolicyTo.IDNumber)
		return nil
	}

	// Persist the prefilled draft; the agent completes the policy details
	// with update-customer afterwards.
	if err := store.PutCustomer(res.Draft); err != nil {
		return fmt.Errorf("failed to save customer draft: %w", err)
	}
	Successf("Customer created from pipeline: %s (ID: %s)", res.Draft.LifeAssuredName, res.Draft.ID)
	Faintf("Complete policy details with: mgr crm update-customer ... %s", res.Draft.ID)
	return nil
}
