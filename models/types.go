// ABOUTME: Data models for insurance-agent CRM entities
// ABOUTME: Defines Customer, Goal, FamilyMember, KIVItem, MonthlyItem, Visit, Referral and calendar records
package models

import (
	"time"
)

// JSON tags stay camelCase to remain readable alongside data exported from
// earlier versions of the agent workbook.

// Coverage holds the per-policy insured amounts for each coverage category.
type Coverage struct {
	Life     float64 `json:"life"`
	Illness  float64 `json:"illness"`
	Accident float64 `json:"accident"`
	Medical  float64 `json:"medical"`
	Hospital float64 `json:"hospital"`
	Waive    float64 `json:"waive"`
}

// Coverage category names.
const (
	CoverageLife     = "life"
	CoverageIllness  = "illness"
	CoverageAccident = "accident"
	CoverageMedical  = "medical"
	CoverageHospital = "hospital"
	CoverageWaive    = "waive"
)

// CoverageCategories lists the valid coverage categories in display order.
var CoverageCategories = []string{
	CoverageLife, CoverageIllness, CoverageAccident,
	CoverageMedical, CoverageHospital, CoverageWaive,
}

// Amount returns the insured amount for the named category, 0 for unknown names.
func (c Coverage) Amount(category string) float64 {
	switch category {
	case CoverageLife:
		return c.Life
	case CoverageIllness:
		return c.Illness
	case CoverageAccident:
		return c.Accident
	case CoverageMedical:
		return c.Medical
	case CoverageHospital:
		return c.Hospital
	case CoverageWaive:
		return c.Waive
	}
	return 0
}

// Customer is one policy row. A person holding multiple policies appears as
// multiple rows sharing the same IDNumber.
type Customer struct {
	ID              string    `json:"id"`
	LifeAssuredName string    `json:"lifeAssuredName"`
	ProposerName    string    `json:"proposerName"`
	Relationship    string    `json:"relationship,omitempty"`
	IDNumber        string    `json:"idNumber"`
	Age             Age       `json:"age"`
	Contact         string    `json:"contact"`
	PolicyType      string    `json:"policyType"`
	PolicyNumber    string    `json:"policyNumber"`
	PremiumAmount   float64   `json:"premiumAmount"`
	EffectiveDate   string    `json:"effectiveDate"`
	Beneficiary     string    `json:"beneficiary"` // "Yes" or "No"
	Coverage        Coverage  `json:"coverage"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Goal types.
const (
	GoalSupremacy = "supremacy"
	GoalMDRT      = "mdrt"
	GoalGSPC      = "gspc"
	GoalCustom    = "custom"
)

type Goal struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Current   float64   `json:"current"`
	DueDate   DateTime  `json:"dueDate"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// Completed reports whether the goal has been reached.
func (g Goal) Completed() bool {
	return g.Current >= g.Amount
}

// Progress returns completion as a ratio of amount; 0 when amount is 0.
func (g Goal) Progress() float64 {
	if g.Amount == 0 {
		return 0
	}
	return g.Current / g.Amount
}

// Remaining returns the amount still needed to reach the goal.
func (g Goal) Remaining() float64 {
	return g.Amount - g.Current
}

// FamilyMember belongs to exactly one owning customer. CustomerID is set when
// the member is themselves already a client.
type FamilyMember struct {
	ID                 string    `json:"id"`
	ParentCustomerID   string    `json:"parentCustomerId"`
	CustomerID         string    `json:"customerId,omitempty"`
	Name               string    `json:"name"`
	Relationship       string    `json:"relationship"`
	Gender             string    `json:"gender"`
	Age                Age       `json:"age"`
	Work               string    `json:"work,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	IsExistingCustomer bool      `json:"isExistingCustomer"`
	CreatedAt          time.Time `json:"createdAt"`
}

// KIVItem is a stalled prospect kept in view for a future follow-up.
type KIVItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PolicyType  string    `json:"policyType"`
	Premium     float64   `json:"premium"`
	LastMeeting DateTime  `json:"lastMeeting"`
	NextMeeting DateTime  `json:"nextMeeting"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Pipeline provenance tags for MonthlyItem.
const (
	SourceMarketable = "marketable" // promoted from the family tree
	SourceKIV        = "kiv"        // promoted from the KIV list
)

// MonthlyItem is a current-month pipeline prospect. SourceType and SourceID
// trace where the record came from when it was created by a promotion.
type MonthlyItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IDNumber    string    `json:"idNumber,omitempty"`
	Age         Age       `json:"age"`
	Contact     string    `json:"contact,omitempty"`
	PolicyType  string    `json:"policyType"`
	Premium     float64   `json:"premium"`
	Appointment DateTime  `json:"appointment"`
	Outcome     string    `json:"outcome,omitempty"`
	SourceType  string    `json:"sourceType,omitempty"`
	SourceID    string    `json:"sourceId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Visit is one row of the 3-visit report.
type Visit struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	Name           string    `json:"name"`
	Source         string    `json:"source"`
	OPF            string    `json:"opf"`
	Age            Age       `json:"age"`
	Work           string    `json:"work,omitempty"`
	Area           string    `json:"area,omitempty"`
	Income         string    `json:"income,omitempty"`
	Concept        string    `json:"concept,omitempty"`
	Premium        float64   `json:"premium,omitempty"`
	ExistingPolicy string    `json:"existingPolicy,omitempty"`
	Outcome        string    `json:"outcome,omitempty"`
	Referral       string    `json:"referral"` // "Yes" or "No"
	CreatedAt      time.Time `json:"createdAt"`
}

type Referral struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Age              Age       `json:"age"`
	From             string    `json:"from"`
	FirstMeetingDate string    `json:"firstMeetingDate,omitempty"`
	LastMeetingDate  string    `json:"lastMeetingDate,omitempty"`
	Outcome          string    `json:"outcome,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CalendarEvent is a free-form calendar entry, merged with goal, KIV and
// monthly due dates for display.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Time        DateTime  `json:"time"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Quadrant scorecard cells, keyed by period strings ("2026-01" months,
// "2026-01-W2" month-weeks).
type PreparationCell struct {
	Month     string    `json:"month"`
	Inventory string    `json:"inventory"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ActionCell struct {
	Month     string    `json:"month"`
	Week      string    `json:"week"`
	NOA       int       `json:"noa"` // number of appointments
	NOP       int       `json:"nop"` // number of presentations
	NOC       int       `json:"noc"` // number of closings
	NOR       int       `json:"nor"` // number of referrals
	Method    string    `json:"method"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StrategyCell struct {
	Month     string    `json:"month"`
	Worker    string    `json:"worker"`
	Student   string    `json:"student"`
	Family    string    `json:"family"`
	HomeVisit string    `json:"homeVisit"`
	Direction string    `json:"direction"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MotivationCell struct {
	Month     string    `json:"month"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuadrantData is the monthly planning scorecard. Unlike the other
// collections it is a single document per agent, not an array.
type QuadrantData struct {
	Preparation map[string]PreparationCell `json:"preparation,omitempty"`
	Action      map[string]ActionCell      `json:"action,omitempty"`
	Strategy    map[string]StrategyCell    `json:"strategy,omitempty"`
	Motivation  map[string]MotivationCell  `json:"motivation,omitempty"`
	LastUpdate  time.Time                  `json:"lastUpdate"`
}

// Agent identifies a namespace in the store. Credentials are out of scope;
// the code alone selects whose records are read and written.
type Agent struct {
	Code      string    `json:"code"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
