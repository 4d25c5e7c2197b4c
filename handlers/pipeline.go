// ABOUTME: Pipeline MCP tool handlers
// ABOUTME: Implements promote_prospect and convert_monthly tools over the transition engine

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
	"github.com/jiale-0528/mgr-sop/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PipelineHandlers struct {
	store  *db.Store
	engine *pipeline.Engine
}

func NewPipelineHandlers(store *db.Store) *PipelineHandlers {
	return &PipelineHandlers{store: store, engine: pipeline.New(store)}
}

type PromoteProspectInput struct {
	Source string `json:"source" jsonschema:"Where the prospect lives: family or kiv"`
	ID     string `json:"id" jsonschema:"Record id of the family member or KIV item"`
}

type MonthlyItemOutput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	PolicyType  string  `json:"policy_type"`
	Premium     float64 `json:"premium"`
	Appointment string  `json:"appointment,omitempty"`
	SourceType  string  `json:"source_type,omitempty"`
}

type PromoteProspectOutput struct {
	Item          MonthlyItemOutput `json:"item"`
	AlreadyExists bool              `json:"already_exists"`
}

func monthlyToOutput(m *models.MonthlyItem) MonthlyItemOutput {
	return MonthlyItemOutput{
		ID:          m.ID,
		Name:        m.Name,
		PolicyType:  m.PolicyType,
		Premium:     m.Premium,
		Appointment: m.Appointment.String(),
		SourceType:  m.SourceType,
	}
}

func (h *PipelineHandlers) PromoteProspect(_ context.Context, request *mcp.CallToolRequest, input PromoteProspectInput) (*mcp.CallToolResult, PromoteProspectOutput, error) {
	if input.ID == "" {
		return nil, PromoteProspectOutput{}, fmt.Errorf("id is required")
	}

	var res *pipeline.PromoteResult
	var err error
	switch input.Source {
	case "family":
		res, err = h.engine.PromoteFamilyMember(input.ID, time.Now())
	case "kiv":
		res, err = h.engine.PromoteKIVItem(input.ID, time.Now())
	default:
		return nil, PromoteProspectOutput{}, fmt.Errorf("source must be family or kiv")
	}
	if err != nil {
		return nil, PromoteProspectOutput{}, err
	}

	return nil, PromoteProspectOutput{
		Item:          monthlyToOutput(res.Item),
		AlreadyExists: res.AlreadyExists,
	}, nil
}

type ConvertMonthlyInput struct {
	ID      string `json:"id" jsonschema:"Monthly pipeline item id"`
	Outcome string `json:"outcome" jsonschema:"Where the prospect goes: customer on success, kiv on failure"`
}

type ConvertMonthlyOutput struct {
	// AddPolicyToCustomer is set when the prospect matched an existing
	// identity; add a policy row to this customer instead of creating one.
	AddPolicyToCustomer *CustomerOutput `json:"add_policy_to_customer,omitempty"`

	// DraftCustomer is a prefilled row to complete when no identity matched.
	DraftCustomer *CustomerOutput `json:"draft_customer,omitempty"`

	// KIVItemID is set when the prospect was recycled to the KIV list.
	KIVItemID string `json:"kiv_item_id,omitempty"`
}

func (h *PipelineHandlers) ConvertMonthly(_ context.Context, request *mcp.CallToolRequest, input ConvertMonthlyInput) (*mcp.CallToolResult, ConvertMonthlyOutput, error) {
	if input.ID == "" {
		return nil, ConvertMonthlyOutput{}, fmt.Errorf("id is required")
	}

	switch input.Outcome {
	case "customer":
		res, err := h.engine.MonthlyToCustomer(input.ID)
		if err != nil {
			return nil, ConvertMonthlyOutput{}, err
		}
		var out ConvertMonthlyOutput
		if res.AddPolicyTo != nil {
			o := customerToOutput(res.AddPolicyTo)
			out.AddPolicyToCustomer = &o
		}
		if res.Draft != nil {
			o := customerToOutput(res.Draft)
			out.DraftCustomer = &o
		}
		return nil, out, nil

	case "kiv":
		kiv, err := h.engine.MonthlyToKIV(input.ID, time.Now())
		if err != nil {
			return nil, ConvertMonthlyOutput{}, err
		}
		return nil, ConvertMonthlyOutput{KIVItemID: kiv.ID}, nil
	}
	return nil, ConvertMonthlyOutput{}, fmt.Errorf("outcome must be customer or kiv")
}
