// ABOUTME: Backup CLI commands
// ABOUTME: Snapshot export/import to files and the automatic backup ring

package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jiale-0528/mgr-sop/backup"
	"github.com/jiale-0528/mgr-sop/db"
)

// BackupExportCommand writes a full snapshot to a JSON file.
func BackupExportCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("backup export", flag.ExitOnError)
	dir := fs.String("dir", ".", "Directory to write the backup file into")
	_ = fs.Parse(args)

	snap, err := backup.Take(store)
	if err != nil {
		return fmt.Errorf("failed to take snapshot: %w", err)
	}
	path, err := snap.WriteFile(*dir)
	if err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	Successf("Backup written: %s", path)
	Faintf("%d collection(s)", len(snap.Data))
	return nil
}

// BackupImportCommand restores a snapshot file into the current agent's data.
func BackupImportCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("backup import", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("backup file path is required")
	}
	snap, err := backup.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	if snap.AgentCode != store.Agent() {
		Warnf("Backup belongs to agent %s, you are %s", snap.AgentCode, store.Agent())
	}
	Faintf("taken %s, %d collection(s)", snap.Timestamp.Format("2006-01-02 15:04"), len(snap.Data))

	if !*yes {
		fmt.Print("Importing replaces your current data. Continue? [y/N] ")
		var answer string
		_, _ = fmt.Fscanln(os.Stdin, &answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := backup.Restore(store, snap); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	Successf("Backup imported")
	return nil
}

// BackupListCommand shows the automatic backup ring.
func BackupListCommand(store *db.Store, args []string) error {
	ring, err := backup.ListAuto(store)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(ring) == 0 {
		fmt.Println("No automatic backups yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "BACK\tTAKEN\tCOLLECTIONS")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----------")
	for i := len(ring) - 1; i >= 0; i-- {
		snap := ring[i]
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\n",
			len(ring)-1-i, snap.Timestamp.Format("2006-01-02 15:04"), len(snap.Data))
	}
	_ = w.Flush()
	return nil
}

// BackupSnapCommand records a snapshot into the automatic ring.
func BackupSnapCommand(store *db.Store, args []string) error {
	snap, err := backup.Take(store)
	if err != nil {
		return fmt.Errorf("failed to take snapshot: %w", err)
	}
	if err := backup.RecordAuto(store, snap); err != nil {
		return fmt.Errorf("failed to record backup: %w", err)
	}
	Successf("Snapshot recorded (%d collections)", len(snap.Data))
	return nil
}

// BackupRestoreCommand restores from the automatic ring.
func BackupRestoreCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("backup restore", flag.ExitOnError)
	back := fs.Int("back", 0, "Steps back from the newest snapshot (0 = newest)")
	_ = fs.Parse(args)

	if err := backup.RestoreAuto(store, *back); err != nil {
		return err
	}
	Successf("Restored automatic backup (%d back)", *back)
	return nil
}
