// ABOUTME: Prospect lifecycle transitions between family, KIV, monthly and customer lists
// ABOUTME: Every transition is a destructive move; promotions stay idempotent on provenance

package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

// DefaultPolicyType fills the policy type on promoted prospects until the
// agent knows better.
const DefaultPolicyType = "TBD"

// Recycle interval for failed monthly prospects moved back to KIV.
const kivRecycleDays = 30

// Default lead time for appointments created from family promotions.
const familyAppointmentDays = 7

// Engine runs pipeline moves against one agent's store.
type Engine struct {
	store *db.Store
}

func New(store *db.Store) *Engine {
	return &Engine{store: store}
}

// PromoteResult reports a promotion into the monthly pipeline.
type PromoteResult struct {
	Item *models.MonthlyItem
	// AlreadyExists is true when a monthly item with the same provenance
	// was found; Item then points at the existing record and nothing was
	// created. Callers navigate instead of duplicating.
	AlreadyExists bool
}

// PromoteFamilyMember moves a marketable family member into the monthly
// pipeline and removes the family record. The provenance check runs first,
// so a repeated promotion finds the moved record instead of failing on the
// deleted source.
func (e *Engine) PromoteFamilyMember(id string, now time.Time) (*PromoteResult, error) {
	existing, err := e.store.FindMonthlyBySource(models.SourceMarketable, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PromoteResult{Item: existing, AlreadyExists: true}, nil
	}

	member, err := e.store.GetFamilyMember(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("family member %s not found", id)
	}

	item := &models.MonthlyItem{
		Name:        member.Name,
		PolicyType:  DefaultPolicyType,
		Premium:     0,
		Appointment: models.DT(now.AddDate(0, 0, familyAppointmentDays)),
		SourceType:  models.SourceMarketable,
		SourceID:    id,
	}
	if err := e.store.PutMonthlyItem(item); err != nil {
		return nil, err
	}
	if err := e.store.DeleteFamilyMember(id); err != nil {
		return nil, err
	}
	log.Info("promoted family member to monthly pipeline", "name", member.Name)
	return &PromoteResult{Item: item}, nil
}

// PromoteKIVItem moves a KIV prospect into the monthly pipeline, carrying
// its policy type, premium and scheduled meeting. The KIV record is removed.
func (e *Engine) PromoteKIVItem(id string, now time.Time) (*PromoteResult, error) {
	existing, err := e.store.FindMonthlyBySource(models.SourceKIV, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PromoteResult{Item: existing, AlreadyExists: true}, nil
	}

	kiv, err := e.store.GetKIVItem(id)
	if err != nil {
		return nil, err
	}
	if kiv == nil {
		return nil, fmt.Errorf("KIV item %s not found", id)
	}

	policyType := kiv.PolicyType
	if policyType == "" {
		policyType = DefaultPolicyType
	}
	appointment := now.AddDate(0, 0, familyAppointmentDays)
	if kiv.NextMeeting.Valid {
		appointment = kiv.NextMeeting.Time
	}
	item := &models.MonthlyItem{
		Name:        kiv.Name,
		PolicyType:  policyType,
		Premium:     kiv.Premium,
		Appointment: models.DT(appointment),
		SourceType:  models.SourceKIV,
		SourceID:    id,
	}
	if err := e.store.PutMonthlyItem(item); err != nil {
		return nil, err
	}
	if err := e.store.DeleteKIVItem(id); err != nil {
		return nil, err
	}
	log.Info("promoted KIV prospect to monthly pipeline", "name", kiv.Name)
	return &PromoteResult{Item: item}, nil
}

// ConvertOutcome reports a monthly-to-customer conversion.
type ConvertOutcome struct {
	// AddPolicyTo is set when a customer with the same idNumber already
	// exists: the caller should add a policy row to that identity rather
	// than create a duplicate one.
	AddPolicyTo *models.Customer

	// Draft is a prefilled customer row for the agent to complete when no
	// existing identity matched. Fields unknown to the pipeline are left
	// empty or zero.
	Draft *models.Customer
}

// MonthlyToCustomer closes a monthly prospect as a success. The source
// monthly item is deleted; the returned outcome tells the caller whether
// to extend an existing identity or complete a fresh draft.
func (e *Engine) MonthlyToCustomer(id string) (*ConvertOutcome, error) {
	item, err := e.store.GetMonthlyItem(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("monthly item %s not found", id)
	}

	outcome := &ConvertOutcome{}
	if item.IDNumber != "" {
		rows, err := e.store.FindCustomersByIDNumber(item.IDNumber)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			outcome.AddPolicyTo = &rows[0]
		}
	}

	if outcome.AddPolicyTo == nil {
		draft := &models.Customer{
			LifeAssuredName: item.Name,
			ProposerName:    item.Name,
			IDNumber:        item.IDNumber,
			Age:             item.Age,
			Contact:         item.Contact,
			PolicyType:      item.PolicyType,
			PremiumAmount:   item.Premium,
			Beneficiary:     "No",
		}
		if item.Appointment.Valid {
			draft.EffectiveDate = item.Appointment.Date()
		}
		outcome.Draft = draft
	}

	if err := e.store.DeleteMonthlyItem(id); err != nil {
		return nil, err
	}
	log.Info("closed monthly prospect as customer", "name", item.Name)
	return outcome, nil
}

// MonthlyToKIV recycles a failed monthly prospect back into the KIV list
// with a follow-up 30 days after the missed appointment. The source
// monthly item is deleted.
func (e *Engine) MonthlyToKIV(id string, now time.Time) (*models.KIVItem, error) {
	item, err := e.store.GetMonthlyItem(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("monthly item %s not found", id)
	}

	lastMeeting := now
	if item.Appointment.Valid {
		lastMeeting = item.Appointment.Time
	}

	reason := item.Outcome
	if reason == "" {
		reason = "moved from monthly pipeline"
	}

	kiv := &models.KIVItem{
		Name:        item.Name,
		PolicyType:  item.PolicyType,
		Premium:     item.Premium,
		LastMeeting: models.DT(lastMeeting),
		NextMeeting: models.DT(lastMeeting.AddDate(0, 0, kivRecycleDays)),
		Reason:      reason,
	}
	if err := e.store.PutKIVItem(kiv); err != nil {
		return nil, err
	}
	if err := e.store.DeleteMonthlyItem(id); err != nil {
		return nil, err
	}
	log.Info("recycled monthly prospect to KIV", "name", item.Name)
	return kiv, nil
}
