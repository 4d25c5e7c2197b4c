// ABOUTME: Customer CLI commands
// ABOUTME: Policy-row CRUD, search, and the coverage gap report

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

// AddCustomerCommand adds a new policy row.
func AddCustomerCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-customer", flag.ExitOnError)
	name := fs.String("name", "", "Life assured name (required)")
	proposer := fs.String("proposer", "", "Proposer name (default: life assured)")
	relationship := fs.String("relationship", "", "Proposer relationship to life assured")
	idNumber := fs.String("id-number", "", "National ID (groups one person's policies)")
	age := fs.Float64("age", 0, "Age of life assured")
	contact := fs.String("contact", "", "Phone number")
	policyType := fs.String("policy-type", "", "Policy plan name")
	policyNumber := fs.String("policy-number", "", "Policy number")
	premium := fs.Float64("premium", 0, "Annual premium (RM)")
	effective := fs.String("effective", "", "Effective date (YYYY-MM-DD)")
	beneficiary := fs.String("beneficiary", "No", "Beneficiary nominated: Yes or No")
	life := fs.Float64("cov-life", 0, "Life coverage (RM)")
	illness := fs.Float64("cov-illness", 0, "Critical illness coverage (RM)")
	accident := fs.Float64("cov-accident", 0, "Accident coverage (RM)")
	medical := fs.Float64("cov-medical", 0, "Medical coverage (RM)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	prop := *proposer
	if prop == "" {
		prop = *name
	}

	customer := &models.Customer{
		LifeAssuredName: *name,
		ProposerName:    prop,
		Relationship:    *relationship,
		IDNumber:        *idNumber,
		Contact:         *contact,
		PolicyType:      *policyType,
		PolicyNumber:    *policyNumber,
		PremiumAmount:   *premium,
		EffectiveDate:   *effective,
		Beneficiary:     *beneficiary,
		Coverage: models.Coverage{
			Life:     *life,
			Illness:  *illness,
			Accident: *accident,
			Medical:  *medical,
		},
	}
	if *age > 0 {
		customer.Age = models.AgeOf(*age)
	}

	if err := store.PutCustomer(customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	Successf("Customer created: %s (ID: %s)", customer.LifeAssuredName, customer.ID)
	if customer.PolicyNumber != "" {
		Faintf("Policy: %s", customer.PolicyNumber)
	}
	return nil
}

// ListCustomersCommand lists policy rows, optionally filtered by a search term.
func ListCustomersCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("list-customers", flag.ExitOnError)
	query := fs.String("query", "", "Search names, ID number or policy number")
	_ = fs.Parse(args)

	customers, err := store.SearchCustomers(*query)
	if err != nil {
		return fmt.Errorf("failed to find customers: %w", err)
	}
	if len(customers) == 0 {
		fmt.Println("No customers found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tID NUMBER\tPOLICY\tPREMIUM\tBENEFICIARY\tID")
	_, _ = fmt.Fprintln(w, "----\t---------\t------\t-------\t-----------\t--")
	for _, c := range customers {
		policy := c.PolicyNumber
		if policy == "" {
			policy = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\tRM %.2f\t%s\t%s\n",
			c.LifeAssuredName, c.IDNumber, policy, c.PremiumAmount, c.Beneficiary, shortID(c.ID))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d policy row(s)\n", len(customers))
	return nil
}

// UpdateCustomerCommand updates fields on an existing policy row.
// Flags must come before the customer ID.
func UpdateCustomerCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("update-customer", flag.ExitOnError)
	name := fs.String("name", "", "Life assured name")
	contact := fs.String("contact", "", "Phone number")
	premium := fs.Float64("premium", -1, "Annual premium (RM)")
	beneficiary := fs.String("beneficiary", "", "Beneficiary nominated: Yes or No")
	policyType := fs.String("policy-type", "", "Policy plan name")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("customer ID is required")
	}
	id := fs.Arg(0)

	customer, err := store.GetCustomer(id)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return fmt.Errorf("customer not found")
	}

	if *name != "" {
		customer.LifeAssuredName = *name
	}
	if *contact != "" {
		customer.Contact = *contact
	}
	if *premium >= 0 {
		customer.PremiumAmount = *premium
	}
	if *beneficiary != "" {
		customer.Beneficiary = *beneficiary
	}
	if *policyType != "" {
		customer.PolicyType = *policyType
	}

	if err := store.PutCustomer(customer); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	Successf("Customer updated: %s", customer.LifeAssuredName)
	return nil
}

// DeleteCustomerCommand removes a policy row.
func DeleteCustomerCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("customer ID is required")
	}
	id := args[0]

	customer, err := store.GetCustomer(id)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return fmt.Errorf("customer not found")
	}
	if err := store.DeleteCustomer(id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	Successf("Customer deleted: %s", customer.LifeAssuredName)
	return nil
}

// CoverageGapCommand reports identities whose combined coverage in one
// category falls below a threshold.
func CoverageGapCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("coverage-gap", flag.ExitOnError)
	category := fs.String("category", models.CoverageLife, "Coverage category (life, illness, accident, medical, hospital, waive)")
	threshold := fs.Float64("threshold", 100000, "Minimum combined coverage (RM)")
	_ = fs.Parse(args)

	customers, err := store.ListCustomers()
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}
	rows, err := views.CoverageGap(customers, *category, *threshold)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		Successf("No coverage gaps: every identity meets RM %.0f %s coverage", *threshold, *category)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tID NUMBER\tPOLICY\tTHIS POLICY\tCOMBINED\tSHORTFALL")
	_, _ = fmt.Fprintln(w, "----\t---------\t------\t-----------\t--------\t---------")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\tRM %.0f\tRM %.0f\tRM %.0f\n",
			r.LifeAssuredName, r.IDNumber, r.PolicyNumber,
			r.Coverage.Amount(*category), r.GroupTotal, *threshold-r.GroupTotal)
	}
	_ = w.Flush()

	fmt.Printf("\n%d policy row(s) under the RM %.0f %s threshold\n", len(rows), *threshold, *category)
	return nil
}

// shortID abbreviates a record id for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
