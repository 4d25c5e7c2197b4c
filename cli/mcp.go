// ABOUTME: MCP server subcommand
// ABOUTME: Exposes customer, pipeline and reminder tools over stdio

package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(store *db.Store) error {
	log.Info("starting MCP server", "agent", store.Agent())

	customerHandlers := handlers.NewCustomerHandlers(store)
	pipelineHandlers := handlers.NewPipelineHandlers(store)
	reminderHandlers := handlers.NewReminderHandlers(store)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mgr",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_customer",
		Description: "Add a policy row to the customer book",
	}, customerHandlers.AddCustomer)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_customers",
		Description: "Search customers by name, ID number, or policy number",
	}, customerHandlers.FindCustomers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "coverage_gap",
		Description: "Find identities whose combined coverage in one category falls below a threshold",
	}, customerHandlers.CoverageGap)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "promote_prospect",
		Description: "Promote a family member or KIV prospect into the monthly pipeline (idempotent)",
	}, pipelineHandlers.PromoteProspect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_monthly",
		Description: "Close a monthly pipeline prospect as a customer (won) or recycle to KIV (lost)",
	}, pipelineHandlers.ConvertMonthly)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_reminders",
		Description: "Get the reminder lists: missing beneficiaries, open goals, marketable family, due KIV meetings",
	}, reminderHandlers.GetReminders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_day_schedule",
		Description: "Everything due on one calendar date, most urgent first",
	}, reminderHandlers.GetDaySchedule)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
