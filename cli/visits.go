// ABOUTME: Visit report CLI commands
// ABOUTME: 3-visit row CRUD, combined report output, and visit-to-referral transfer

package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

// AddVisitCommand records one visit row.
func AddVisitCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-visit", flag.ExitOnError)
	date := fs.String("date", "", "Visit date (YYYY-MM-DD, required)")
	name := fs.String("name", "", "Prospect name (required)")
	source := fs.String("source", "", "Where the prospect came from")
	opf := fs.String("opf", "", "OPF stage")
	age := fs.Float64("age", 0, "Age")
	work := fs.String("work", "", "Occupation")
	area := fs.String("area", "", "Area")
	income := fs.String("income", "", "Income band")
	concept := fs.String("concept", "", "Concept presented")
	premium := fs.Float64("premium", 0, "Discussed premium (RM)")
	existingPolicy := fs.String("existing-policy", "", "Existing policies held")
	outcome := fs.String("outcome", "", "Visit outcome")
	referral := fs.String("referral", "No", "Produced a referral: Yes or No")
	_ = fs.Parse(args)

	if *date == "" {
		return fmt.Errorf("--date is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	visit := &models.Visit{
		Date:           *date,
		Name:           *name,
		Source:         *source,
		OPF:            *opf,
		Work:           *work,
		Area:           *area,
		Income:         *income,
		Concept:        *concept,
		Premium:        *premium,
		ExistingPolicy: *existingPolicy,
		Outcome:        *outcome,
		Referral:       *referral,
	}
	if *age > 0 {
		visit.Age = models.AgeOf(*age)
	}

	if err := store.PutVisit(visit); err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	Successf("Visit recorded: %s on %s", visit.Name, visit.Date)
	return nil
}

// ListVisitsCommand lists visit rows.
func ListVisitsCommand(store *db.Store, args []string) error {
	visits, err := store.ListVisits()
	if err != nil {
		return fmt.Errorf("failed to list visits: %w", err)
	}
	if len(visits) == 0 {
		fmt.Println("No visits recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tNAME\tSOURCE\tOPF\tPREMIUM\tREFERRAL\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t------\t---\t-------\t--------\t--")
	for _, v := range visits {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\tRM %.0f\t%s\t%s\n",
			v.Date, v.Name, v.Source, v.OPF, v.Premium, v.Referral, shortID(v.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d visit(s)\n", len(visits))
	return nil
}

// DeleteVisitCommand removes a visit row.
func DeleteVisitCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("visit ID is required")
	}
	visit, err := store.GetVisit(args[0])
	if err != nil {
		return fmt.Errorf("failed to get visit: %w", err)
	}
	if visit == nil {
		return fmt.Errorf("visit not found")
	}
	if err := store.DeleteVisit(args[0]); err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	Successf("Visit deleted: %s (%s)", visit.Name, visit.Date)
	return nil
}

// CombineVisitsCommand prints the selected visits as one shareable report.
func CombineVisitsCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("combine-visits", flag.ExitOnError)
	ids := fs.String("ids", "", "Comma-separated visit IDs (required)")
	_ = fs.Parse(args)

	if *ids == "" {
		return fmt.Errorf("--ids is required")
	}
	report, err := store.CombineVisits(strings.Split(*ids, ","))
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

// TransferVisitCommand turns a referral-producing visit into a referral record.
func TransferVisitCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("visit ID is required")
	}
	referral, err := store.TransferVisitToReferral(args[0])
	if err != nil {
		return err
	}
	Successf("Referral created from visit: %s (ID: %s)", referral.Name, shortID(referral.ID))
	return nil
}
