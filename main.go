// ABOUTME: Entry point for the insurance agent workbook MCP server and CLI
// ABOUTME: Routes to MCP server or CLI commands based on arguments

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jiale-0528/mgr-sop/backup"
	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/cli"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/sync"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("mgr version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "agent":
		if len(commandArgs) == 0 {
			fmt.Println("Error: agent requires a subcommand (use, whoami)")
			os.Exit(1)
		}
		var err error
		switch commandArgs[0] {
		case "use":
			err = cli.UseAgentCommand(commandArgs[1:])
		case "whoami":
			err = cli.WhoAmICommand(commandArgs[1:])
		default:
			err = fmt.Errorf("unknown agent command: %s", commandArgs[0])
		}
		if err != nil {
			log.Fatal(err)
		}

	case "mcp":
		store, _, done := openStore()
		defer done()
		if err := cli.MCPCommand(store); err != nil {
			log.Fatal("MCP server failed", "err", err)
		}

	case "crm":
		store, _, done := openStore()
		defer done()
		runCRM(store, commandArgs)

	case "calendar":
		store, _, done := openStore()
		defer done()
		var err error
		if len(commandArgs) > 0 && commandArgs[0] == "day" {
			err = cli.CalendarDayCommand(store, commandArgs[1:])
		} else {
			err = cli.CalendarMonthCommand(store, commandArgs)
		}
		if err != nil {
			log.Fatal(err)
		}

	case "reminders":
		store, _, done := openStore()
		defer done()
		if err := cli.RemindersCommand(store, commandArgs); err != nil {
			log.Fatal(err)
		}

	case "quadrant":
		store, _, done := openStore()
		defer done()
		runQuadrant(store, commandArgs)

	case "check":
		store, _, done := openStore()
		defer done()
		if err := cli.CheckCommand(store, commandArgs); err != nil {
			log.Fatal(err)
		}

	case "backup":
		store, _, done := openStore()
		defer done()
		runBackup(store, commandArgs)

	case "sync":
		store, client, done := openStore()
		defer done()
		runSync(store, client, commandArgs)

	case "viz":
		store, _, done := openStore()
		defer done()
		if len(commandArgs) == 0 || commandArgs[0] != "family" {
			fmt.Println("Error: viz requires a subcommand (family)")
			os.Exit(1)
		}
		if err := cli.VizFamilyCommand(store, commandArgs[1:]); err != nil {
			log.Fatal(err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// openStore wires the charm KV client, the agent namespace and the SQLite
// mirror together. The returned cleanup runs the exit auto-backup when the
// config asks for one.
func openStore() (*db.Store, *charm.Client, func()) {
	client, err := charm.GetClient()
	if err != nil {
		log.Fatal("failed to open data store", "err", err)
	}

	agent, err := cli.RequireAgent()
	if err != nil {
		log.Fatal(err)
	}

	store := db.NewStore(client, agent.Code)

	if m, err := sync.OpenMirror(sync.DefaultMirrorPath()); err == nil {
		store.SetMirror(m)
		return store, client, func() {
			exitBackup(store, client)
			_ = m.Close()
		}
	}
	return store, client, func() { exitBackup(store, client) }
}

func exitBackup(store *db.Store, client *charm.Client) {
	if !client.Config().AutoBackup {
		return
	}
	snap, err := backup.Take(store)
	if err == nil {
		err = backup.RecordAuto(store, snap)
	}
	if err != nil {
		log.Warn("exit backup failed", "err", err)
	}
}

func runCRM(store *db.Store, args []string) {
	if len(args) == 0 {
		fmt.Println("Error: crm requires a subcommand")
		printUsage()
		os.Exit(1)
	}
	sub := args[0]
	subArgs := args[1:]

	var err error
	switch sub {
	// Customer commands
	case "add-customer":
		err = cli.AddCustomerCommand(store, subArgs)
	case "list-customers":
		err = cli.ListCustomersCommand(store, subArgs)
	case "update-customer":
		err = cli.UpdateCustomerCommand(store, subArgs)
	case "delete-customer":
		err = cli.DeleteCustomerCommand(store, subArgs)
	case "coverage-gap":
		err = cli.CoverageGapCommand(store, subArgs)

	// Goal commands
	case "add-goal":
		err = cli.AddGoalCommand(store, subArgs)
	case "list-goals":
		err = cli.ListGoalsCommand(store, subArgs)
	case "update-goal":
		err = cli.UpdateGoalCommand(store, subArgs)
	case "delete-goal":
		err = cli.DeleteGoalCommand(store, subArgs)

	// Family network commands
	case "add-family":
		err = cli.AddFamilyMemberCommand(store, subArgs)
	case "list-family":
		err = cli.ListFamilyCommand(store, subArgs)
	case "delete-family":
		err = cli.DeleteFamilyMemberCommand(store, subArgs)
	case "promote-family":
		err = cli.PromoteFamilyMemberCommand(store, subArgs)

	// KIV commands
	case "add-kiv":
		err = cli.AddKIVCommand(store, subArgs)
	case "list-kiv":
		err = cli.ListKIVCommand(store, subArgs)
	case "update-kiv":
		err = cli.UpdateKIVCommand(store, subArgs)
	case "delete-kiv":
		err = cli.DeleteKIVCommand(store, subArgs)
	case "promote-kiv":
		err = cli.PromoteKIVCommand(store, subArgs)

	// Monthly pipeline commands
	case "add-monthly":
		err = cli.AddMonthlyCommand(store, subArgs)
	case "list-monthly":
		err = cli.ListMonthlyCommand(store, subArgs)
	case "update-monthly":
		err = cli.UpdateMonthlyCommand(store, subArgs)
	case "delete-monthly":
		err = cli.DeleteMonthlyCommand(store, subArgs)
	case "close-monthly":
		err = cli.CloseMonthlyCommand(store, subArgs)

	// Visit report commands
	case "add-visit":
		err = cli.AddVisitCommand(store, subArgs)
	case "list-visits":
		err = cli.ListVisitsCommand(store, subArgs)
	case "delete-visit":
		err = cli.DeleteVisitCommand(store, subArgs)
	case "combine-visits":
		err = cli.CombineVisitsCommand(store, subArgs)
	case "transfer-visit":
		err = cli.TransferVisitCommand(store, subArgs)

	// Referral commands
	case "add-referral":
		err = cli.AddReferralCommand(store, subArgs)
	case "list-referrals":
		err = cli.ListReferralsCommand(store, subArgs)
	case "update-referral":
		err = cli.UpdateReferralCommand(store, subArgs)
	case "delete-referral":
		err = cli.DeleteReferralCommand(store, subArgs)

	// Calendar event commands
	case "add-event":
		err = cli.AddEventCommand(store, subArgs)
	case "delete-event":
		err = cli.DeleteEventCommand(store, subArgs)

	default:
		fmt.Printf("Unknown crm command: %s\n\n", sub)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runQuadrant(store *db.Store, args []string) {
	sub := "show"
	subArgs := args
	if len(args) > 0 {
		sub = args[0]
		subArgs = args[1:]
	}

	var err error
	switch sub {
	case "show":
		err = cli.QuadrantShowCommand(store, subArgs)
	case "prep":
		err = cli.QuadrantPrepCommand(store, subArgs)
	case "action":
		err = cli.QuadrantActionCommand(store, subArgs)
	case "strategy":
		err = cli.QuadrantStrategyCommand(store, subArgs)
	case "motivation":
		err = cli.QuadrantMotivationCommand(store, subArgs)
	default:
		err = fmt.Errorf("unknown quadrant command: %s", sub)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runBackup(store *db.Store, args []string) {
	if len(args) == 0 {
		fmt.Println("Error: backup requires a subcommand (export, import, list, snap, restore)")
		os.Exit(1)
	}
	var err error
	switch args[0] {
	case "export":
		err = cli.BackupExportCommand(store, args[1:])
	case "import":
		err = cli.BackupImportCommand(store, args[1:])
	case "list":
		err = cli.BackupListCommand(store, args[1:])
	case "snap":
		err = cli.BackupSnapCommand(store, args[1:])
	case "restore":
		err = cli.BackupRestoreCommand(store, args[1:])
	default:
		err = fmt.Errorf("unknown backup command: %s", args[0])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runSync(store *db.Store, client *charm.Client, args []string) {
	if len(args) == 0 {
		fmt.Println("Error: sync requires a subcommand (pull, mirror, restore, status, config)")
		os.Exit(1)
	}
	var err error
	switch args[0] {
	case "pull":
		err = cli.SyncPullCommand(client, args[1:])
	case "mirror":
		err = cli.SyncMirrorCommand(store, args[1:])
	case "restore":
		err = cli.SyncRestoreCommand(store, args[1:])
	case "status":
		err = cli.SyncStatusCommand(client, store, args[1:])
	case "config":
		err = cli.SyncConfigCommand(client, args[1:])
	default:
		err = fmt.Errorf("unknown sync command: %s", args[0])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Printf(`mgr v%s - Insurance agent workbook

USAGE:
  mgr [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit

COMMANDS:
  agent                  Select or show the working agent
  mcp                    Start MCP server (stdio)
  crm                    Record management commands
  calendar               Month overview and day detail
  reminders              Actionable reminder lists
  quadrant               Planning scorecard
  check                  Data integrity checker
  backup                 Snapshot export/import and the automatic ring
  sync                   Cloud sync and the SQLite fallback mirror
  viz                    Family network graphs

AGENT:
  mgr agent use --code A123 [--name "Jane"]   Select the working agent
  mgr agent whoami                            Show the selected agent

CRM COMMANDS:
  mgr crm add-customer      Add a policy row
    --name <name>             Life assured (required)
    --id-number <id>          National ID (groups one person's policies)
    --policy-number <no>      Policy number
    --premium <rm>            Annual premium
    --beneficiary Yes|No      Beneficiary nominated
    --cov-life <rm>           Life coverage (plus -illness/-accident/-medical)

  mgr crm list-customers [--query <text>]
  mgr crm update-customer [flags] <id>     (flags before the ID)
  mgr crm delete-customer <id>
  mgr crm coverage-gap --category life --threshold 100000

  mgr crm add-goal --title <t> --amount <rm> [--type mdrt] [--due YYYY-MM-DD]
  mgr crm list-goals | update-goal [flags] <id> | delete-goal <id>

  mgr crm add-family --customer <id> --name <n> [--relationship <r>]
  mgr crm list-family [--customer <id>] [--marketable]
  mgr crm promote-family <id>              Move a member into the pipeline

  mgr crm add-kiv --name <n> [--next-meeting <date>] [--reason <r>]
  mgr crm list-kiv | update-kiv [flags] <id> | delete-kiv <id>
  mgr crm promote-kiv <id>                 Move a KIV prospect into the pipeline

  mgr crm add-monthly --name <n> [--appointment <date>]
  mgr crm list-monthly | update-monthly [flags] <id>
  mgr crm close-monthly --won|--lost <id>  Convert to customer or recycle to KIV

  mgr crm add-visit --date <d> --name <n> [...]
  mgr crm combine-visits --ids <id,id,id>  Shareable multi-visit report
  mgr crm transfer-visit <id>              Create a referral from a visit

  mgr crm add-referral --name <n> --from <who>
  mgr crm add-event --title <t> --time <date>

OTHER:
  mgr calendar [--month YYYY-MM]           Month overview
  mgr calendar day [--date YYYY-MM-DD]     Day detail, urgent first
  mgr reminders [--kind kiv]               Reminder lists
  mgr quadrant [show|prep|action|strategy|motivation]
  mgr check [--fix]                        Integrity check, optional repairs
  mgr backup export [--dir <dir>]          Write MGR_Backup_<agent>_<date>.json
  mgr backup import [--yes] <file>
  mgr backup snap | list | restore [--back <n>]
  mgr sync pull | mirror | restore | status
  mgr sync config [--host <h>] [--auto-sync on|off]
  mgr viz family [--output graph.png] [customer-id]

EXAMPLES:
  mgr agent use --code A123
  mgr crm add-customer --name "Tan Mei Ling" --id-number 880101-14-5566 --premium 3600
  mgr crm coverage-gap --category illness --threshold 200000
  mgr reminders --kind kiv
  mgr check --fix

`, version)
}
