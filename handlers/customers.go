// ABOUTME: Customer MCP tool handlers
// ABOUTME: Implements add_customer, find_customers, and coverage_gap tools

package handlers

import (
	"context"
	"fmt"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
	"github.com/jiale-0528/mgr-sop/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CustomerHandlers struct {
	store *db.Store
}

func NewCustomerHandlers(store *db.Store) *CustomerHandlers {
	return &CustomerHandlers{store: store}
}

type AddCustomerInput struct {
	LifeAssuredName string  `json:"life_assured_name" jsonschema:"Life assured name (required)"`
	ProposerName    string  `json:"proposer_name,omitempty" jsonschema:"Proposer name, defaults to life assured"`
	Relationship    string  `json:"relationship,omitempty" jsonschema:"Relationship between proposer and life assured"`
	IDNumber        string  `json:"id_number,omitempty" jsonschema:"National ID of the life assured, groups policies of one person"`
	Age             float64 `json:"age,omitempty" jsonschema:"Age of the life assured"`
	Contact         string  `json:"contact,omitempty" jsonschema:"Phone number"`
	PolicyType      string  `json:"policy_type,omitempty" jsonschema:"Policy plan name"`
	PolicyNumber    string  `json:"policy_number,omitempty" jsonschema:"Policy number"`
	PremiumAmount   float64 `json:"premium_amount,omitempty" jsonschema:"Annual premium in RM"`
	EffectiveDate   string  `json:"effective_date,omitempty" jsonschema:"Policy effective date (YYYY-MM-DD)"`
	Beneficiary     string  `json:"beneficiary,omitempty" jsonschema:"Whether a beneficiary is nominated: Yes or No"`
	CoverageLife    float64 `json:"coverage_life,omitempty" jsonschema:"Life coverage amount in RM"`
	CoverageIllness float64 `json:"coverage_illness,omitempty" jsonschema:"Critical illness coverage amount in RM"`
}

type CustomerOutput struct {
	ID              string  `json:"id"`
	LifeAssuredName string  `json:"life_assured_name"`
	ProposerName    string  `json:"proposer_name,omitempty"`
	IDNumber        string  `json:"id_number,omitempty"`
	PolicyType      string  `json:"policy_type,omitempty"`
	PolicyNumber    string  `json:"policy_number,omitempty"`
	PremiumAmount   float64 `json:"premium_amount"`
	Beneficiary     string  `json:"beneficiary,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func customerToOutput(c *models.Customer) CustomerOutput {
	return CustomerOutput{
		ID:              c.ID,
		LifeAssuredName: c.LifeAssuredName,
		ProposerName:    c.ProposerName,
		IDNumber:        c.IDNumber,
		PolicyType:      c.PolicyType,
		PolicyNumber:    c.PolicyNumber,
		PremiumAmount:   c.PremiumAmount,
		Beneficiary:     c.Beneficiary,
		CreatedAt:       c.CreatedAt.Format("2006-01-02"),
	}
}

func (h *CustomerHandlers) AddCustomer(_ context.Context, request *mcp.CallToolRequest, input AddCustomerInput) (*mcp.CallToolResult, CustomerOutput, error) {
	if input.LifeAssuredName == "" {
		return nil, CustomerOutput{}, fmt.Errorf("life_assured_name is required")
	}

	proposer := input.ProposerName
	if proposer == "" {
		proposer = input.LifeAssuredName
	}
	beneficiary := input.Beneficiary
	if beneficiary == "" {
		beneficiary = "No"
	}

	customer := &models.Customer{
		LifeAssuredName: input.LifeAssuredName,
		ProposerName:    proposer,
		Relationship:    input.Relationship,
		IDNumber:        input.IDNumber,
		Contact:         input.Contact,
		PolicyType:      input.PolicyType,
		PolicyNumber:    input.PolicyNumber,
		PremiumAmount:   input.PremiumAmount,
		EffectiveDate:   input.EffectiveDate,
		Beneficiary:     beneficiary,
		Coverage: models.Coverage{
			Life:    input.CoverageLife,
			Illness: input.CoverageIllness,
		},
	}
	if input.Age > 0 {
		customer.Age = models.AgeOf(input.Age)
	}

	if err := h.store.PutCustomer(customer); err != nil {
		return nil, CustomerOutput{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return nil, customerToOutput(customer), nil
}

type FindCustomersInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (names, ID number, policy number)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindCustomersOutput struct {
	Customers []CustomerOutput `json:"customers"`
}

func (h *CustomerHandlers) FindCustomers(_ context.Context, request *mcp.CallToolRequest, input FindCustomersInput) (*mcp.CallToolResult, FindCustomersOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	customers, err := h.store.SearchCustomers(input.Query)
	if err != nil {
		return nil, FindCustomersOutput{}, fmt.Errorf("failed to find customers: %w", err)
	}
	if len(customers) > limit {
		customers = customers[:limit]
	}

	result := make([]CustomerOutput, len(customers))
	for i := range customers {
		result[i] = customerToOutput(&customers[i])
	}
	return nil, FindCustomersOutput{Customers: result}, nil
}

type CoverageGapInput struct {
	Category  string  `json:"category" jsonschema:"Coverage category: life, illness, accident, medical, hospital, or waive"`
	Threshold float64 `json:"threshold" jsonschema:"Minimum combined coverage in RM; identities below it are gapped"`
}

type CoverageGapRowOutput struct {
	CustomerOutput
	GroupTotal float64 `json:"group_total"`
}

type CoverageGapOutput struct {
	Rows []CoverageGapRowOutput `json:"rows"`
}

func (h *CustomerHandlers) CoverageGap(_ context.Context, request *mcp.CallToolRequest, input CoverageGapInput) (*mcp.CallToolResult, CoverageGapOutput, error) {
	customers, err := h.store.ListCustomers()
	if err != nil {
		return nil, CoverageGapOutput{}, fmt.Errorf("failed to list customers: %w", err)
	}

	rows, err := views.CoverageGap(customers, input.Category, input.Threshold)
	if err != nil {
		return nil, CoverageGapOutput{}, err
	}

	out := CoverageGapOutput{Rows: make([]CoverageGapRowOutput, len(rows))}
	for i, r := range rows {
		out.Rows[i] = CoverageGapRowOutput{
			CustomerOutput: customerToOutput(&r.Customer),
			GroupTotal:     r.GroupTotal,
		}
	}
	return nil, out, nil
}
