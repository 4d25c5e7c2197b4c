// ABOUTME: Sync CLI commands
// ABOUTME: Cloud pull, SQLite mirror rebuild/restore, and a status summary

package cli

import (
	"flag"
	"fmt"

	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/sync"
)

// SyncPullCommand blocks on a cloud sync.
func SyncPullCommand(client *charm.Client, args []string) error {
	if err := sync.PullCloud(client); err != nil {
		return fmt.Errorf("cloud sync failed: %w", err)
	}
	Successf("Synced with %s", client.Config().Host)
	return nil
}

// SyncMirrorCommand rebuilds the local SQLite mirror from the store.
func SyncMirrorCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("sync mirror", flag.ExitOnError)
	path := fs.String("path", sync.DefaultMirrorPath(), "Mirror database path")
	_ = fs.Parse(args)

	m, err := sync.OpenMirror(*path)
	if err != nil {
		return fmt.Errorf("failed to open mirror: %w", err)
	}
	defer m.Close()

	n, err := sync.MirrorAll(store, m)
	if err != nil {
		return fmt.Errorf("mirror rebuild failed: %w", err)
	}
	Successf("Mirror rebuilt: %d collection(s) at %s", n, *path)
	return nil
}

// SyncRestoreCommand restores the store from the SQLite mirror.
func SyncRestoreCommand(store *db.Store, args []string) error {
	fs := flag.NewFlagSet("sync restore", flag.ExitOnError)
	path := fs.String("path", sync.DefaultMirrorPath(), "Mirror database path")
	_ = fs.Parse(args)

	m, err := sync.OpenMirror(*path)
	if err != nil {
		return fmt.Errorf("failed to open mirror: %w", err)
	}
	defer m.Close()

	n, err := sync.RestoreFromMirror(store, m)
	if err != nil {
		return fmt.Errorf("mirror restore failed: %w", err)
	}
	if n == 0 {
		Warnf("Mirror had nothing for agent %s", store.Agent())
		return nil
	}
	Successf("Restored %d collection(s) from mirror", n)
	return nil
}

// SyncStatusCommand summarizes cloud and mirror state.
func SyncStatusCommand(client *charm.Client, store *db.Store, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ExitOnError)
	path := fs.String("path", sync.DefaultMirrorPath(), "Mirror database path")
	_ = fs.Parse(args)

	cfg := client.Config()
	m, err := sync.OpenMirror(*path)
	if err != nil {
		// A missing mirror is a state, not a failure.
		m = nil
	}
	if m != nil {
		defer m.Close()
	}

	st, err := sync.CheckStatus(m, *path, store.Agent(), cfg.AutoSync)
	if err != nil {
		return fmt.Errorf("failed to check status: %w", err)
	}

	fmt.Printf("Agent:       %s\n", store.Agent())
	fmt.Printf("Cloud host:  %s\n", cfg.Host)
	if st.CloudEnabled {
		fmt.Println("Auto-sync:   on")
	} else {
		fmt.Println("Auto-sync:   off")
	}
	if client.IsConnected() {
		fmt.Println("Cloud:       reachable")
	} else {
		fmt.Println("Cloud:       unreachable (local-only)")
	}
	fmt.Printf("Mirror:      %s\n", st.MirrorPath)
	if st.Mirrored > 0 {
		fmt.Printf("Mirrored:    %d collection(s), last write %s\n",
			st.Mirrored, st.LastMirrorWrite.Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Mirrored:    nothing yet")
	}
	return nil
}

// SyncConfigCommand adjusts sync settings.
func SyncConfigCommand(client *charm.Client, args []string) error {
	fs := flag.NewFlagSet("sync config", flag.ExitOnError)
	host := fs.String("host", "", "Charm server host")
	autoSync := fs.String("auto-sync", "", "Enable background sync after writes: on or off")
	_ = fs.Parse(args)

	cfg := client.Config()
	if *host != "" {
		if err := cfg.SetHost(*host); err != nil {
			return err
		}
		Successf("Host set: %s", *host)
	}
	switch *autoSync {
	case "":
	case "on":
		if err := cfg.SetAutoSync(true); err != nil {
			return err
		}
		Successf("Auto-sync enabled")
	case "off":
		if err := cfg.SetAutoSync(false); err != nil {
			return err
		}
		Successf("Auto-sync disabled")
	default:
		return fmt.Errorf("--auto-sync must be on or off")
	}
	return nil
}
