// ABOUTME: Visualization CLI commands
// ABOUTME: Family network graphs as DOT source or rendered PNG

package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/viz"
)

// VizFamilyCommand renders the family network graph. With no positional
// argument it covers every customer that has family members.
func VizFamilyCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("viz family", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: DOT to stdout; .png renders an image)")
	_ = fs.Parse(args)

	customerID := ""
	if fs.NArg() > 0 {
		customerID = fs.Arg(0)
	}

	gen := viz.NewGraphGenerator(store)

	if strings.HasSuffix(*output, ".png") {
		if err := gen.WritePNG(customerID, *output); err != nil {
			return err
		}
		Successf("Graph rendered: %s", *output)
		return nil
	}

	dot, err := gen.GenerateFamilyGraph(customerID)
	if err != nil {
		return err
	}
	if *output == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(*output, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	Successf("Graph written: %s", *output)
	return nil
}
