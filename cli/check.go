// ABOUTME: Data integrity CLI command
// ABOUTME: Runs the checker, prints findings, and applies fixes on request

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/integrity"
)

// CheckCommand runs the integrity checker over every collection.
func CheckCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fix := fs.Bool("fix", false, "Apply automatic fixes and re-persist")
	_ = fs.Parse(args)

	session, err := integrity.Check(store)
	if err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}

	if len(session.Findings) == 0 {
		Successf("All collections are consistent")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SEVERITY\tCOLLECTION\tFIELD\tPROBLEM\tFIXABLE")
	_, _ = fmt.Fprintln(w, "--------\t----------\t-----\t-------\t-------")
	for _, f := range session.Findings {
		fixable := "no"
		if f.Fixable() {
			fixable = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.Severity, f.Collection, f.Field, f.Message, fixable)
	}
	_ = w.Flush()

	fmt.Println()
	if session.Errors() > 0 {
		Errorf("%d error(s), %d warning(s)", session.Errors(), session.Warnings())
	} else {
		Warnf("%d warning(s)", session.Warnings())
	}

	if !*fix {
		Faintf("run with --fix to apply automatic repairs")
		return nil
	}

	if err := session.ApplyFixes(); err != nil {
		return fmt.Errorf("failed to apply fixes: %w", err)
	}
	Successf("Fixes applied")

	// Verify the repairs held.
	again, err := integrity.Check(store)
	if err != nil {
		return err
	}
	if len(again.Findings) > 0 {
		Warnf("%d finding(s) remain after fixes", len(again.Findings))
	} else {
		Successf("Re-check clean")
	}
	return nil
}
