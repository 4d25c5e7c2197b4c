// ABOUTME: Family network CLI commands
// ABOUTME: Member CRUD under an owning customer plus promotion into the pipeline

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

// AddFamilyMemberCommand records a family member under a customer.
func AddFamilyMemberCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("add-family", flag.ExitOnError)
	customerID := fs.String("customer", "", "Owning customer ID (required)")
	name := fs.String("name", "", "Member name (required)")
	relationship := fs.String("relationship", "", "Relationship to the customer")
	gender := fs.String("gender", "", "Gender")
	age := fs.Float64("age", 0, "Age")
	work := fs.String("work", "", "Occupation")
	phone := fs.String("phone", "", "Phone number")
	existing := fs.Bool("existing-customer", false, "Member is already a client")
	_ = fs.Parse(args)

	if *customerID == "" {
		return fmt.Errorf("--customer is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	owner, err := store.GetCustomer(*customerID)
	if err != nil {
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if owner == nil {
		return fmt.Errorf("customer not found")
	}

	member := &models.FamilyMember{
		ParentCustomerID:   owner.ID,
		Name:               *name,
		Relationship:       *relationship,
		Gender:             *gender,
		Work:               *work,
		Phone:              *phone,
		IsExistingCustomer: *existing,
	}
	if *age > 0 {
		member.Age = models.AgeOf(*age)
	}

	if err := store.PutFamilyMember(member); err != nil {
		return fmt.Errorf("failed to create family member: %w", err)
	}
	Successf("Family member added: %s (%s of %s)", member.Name, member.Relationship, owner.LifeAssuredName)
	return nil
}

// ListFamilyCommand lists family members, optionally for one customer.
func ListFamilyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("list-family", flag.ExitOnError)
	customerID := fs.String("customer", "", "Filter by owning customer ID")
	marketable := fs.Bool("marketable", false, "Only members who are not yet clients")
	_ = fs.Parse(args)

	members, err := store.ListFamily()
	if err != nil {
		return fmt.Errorf("failed to list family members: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tRELATIONSHIP\tAGE\tPHONE\tCLIENT\tID")
	_, _ = fmt.Fprintln(w, "----\t------------\t---\t-----\t------\t--")
	shown := 0
	for _, m := range members {
		if *customerID != "" && m.ParentCustomerID != *customerID {
			continue
		}
		if *marketable && m.IsExistingCustomer {
			continue
		}
		client := "no"
		if m.IsExistingCustomer {
			client = "yes"
		}
		age := m.Age.String()
		if age == "" {
			age = "-"
		}
		phone := m.Phone
		if phone == "" {
			phone = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Name, m.Relationship, age, phone, client, shortID(m.ID))
		shown++
	}
	_ = w.Flush()

	if shown == 0 {
		fmt.Println("No family members found")
		return nil
	}
	fmt.Printf("\nTotal: %d member(s)\n", shown)
	return nil
}

// DeleteFamilyMemberCommand removes a family member.
func DeleteFamilyMemberCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("family member ID is required")
	}
	member, err := store.GetFamilyMember(args[0])
	if err != nil {
		return fmt.Errorf("failed to get family member: %w", err)
	}
	if member == nil {
		return fmt.Errorf("family member not found")
	}
	if err := store.DeleteFamilyMember(args[0]); err != nil {
		return fmt.Errorf("failed to delete family member: %w", err)
	}
	Successf("Family member deleted: %s", member.Name)
	return nil
}

// PromoteFamilyMemberCommand moves a member into the monthly pipeline.
func PromoteFamilyMemberCommand(store *db.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("family member ID is required")
	}

	res, err := pipeline.New(store).PromoteFamilyMember(args[0], time.Now())
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
