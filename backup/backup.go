// ABOUTME: Versioned JSON snapshots of all collections for export and restore
// ABOUTME: Keeps an in-store ring of recent automatic backups alongside file export

package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jiale-0528/mgr-sop/db"
)

// Version is the snapshot format version stamped on every export.
const Version = "1.0"

// keepBackups caps the automatic backup ring.
const keepBackups = 10

// Snapshot is one complete backup of an agent's data. Collections are kept
// as raw JSON so a snapshot round-trips bytes it does not understand.
type Snapshot struct {
	ID        string                     `json:"id"`
	AgentCode string                     `json:"agentCode"`
	Timestamp time.Time                  `json:"timestamp"`
	Version   string                     `json:"version"`
	Data      map[string]json.RawMessage `json:"data"`
}

// Take reads every collection into a new snapshot.
func Take(store *db.Store) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        uuid.NewString(),
		AgentCode: store.Agent(),
		Timestamp: time.Now(),
		Version:   Version,
		Data:      make(map[string]json.RawMessage, len(db.Collections)),
	}
	for _, coll := range db.Collections {
		data, err := store.RawRead(coll)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		snap.Data[coll] = json.RawMessage(data)
	}
	return snap, nil
}

// Filename returns the conventional export name for a snapshot.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("MGR_Backup_%s_%s.json",
		s.AgentCode, s.Timestamp.Format("2006-01-02"))
}

// WriteFile exports the snapshot to dir and returns the written path.
func (s *Snapshot) WriteFile(dir string) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.Filename())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	log.Info("backup exported", "path", path, "collections", len(s.Data))
	return path, nil
}

// ReadFile loads an exported snapshot and validates its shape.
func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("not a backup file: %w", err)
	}
	if snap.Version == "" || snap.Data == nil {
		return nil, fmt.Errorf("not a backup file: missing version or data")
	}
	return &snap, nil
}

// Restore writes the snapshot's collections into the store, replacing what
// is there. A snapshot from a different agent restores into the current
// agent's namespace with a warning rather than a refusal; importing a
// colleague's export is a supported handover path.
func Restore(store *db.Store, snap *Snapshot) error {
	if snap.AgentCode != "" && snap.AgentCode != store.Agent() {
		log.Warn("backup belongs to a different agent",
			"backup", snap.AgentCode, "current", store.Agent())
	}
	for _, coll := range db.Collections {
		data, ok := snap.Data[coll]
		if !ok {
			continue
		}
		if err := store.RawWrite(coll, data); err != nil {
			return err
		}
	}
	log.Info("backup restored", "collections", len(snap.Data), "from", snap.Timestamp.Format("2006-01-02 15:04"))
	return nil
}

// RecordAuto appends the snapshot to the automatic backup ring, trimming to
// the newest entries.
func RecordAuto(store *db.Store, snap *Snapshot) error {
	ring, err := ListAuto(store)
	if err != nil {
		return err
	}
	ring = append(ring, *snap)
	if len(ring) > keepBackups {
		ring = ring[len(ring)-keepBackups:]
	}
	return store.Write(db.CollBackups, ring)
}

// ListAuto returns the automatic backup ring, oldest first.
func ListAuto(store *db.Store) ([]Snapshot, error) {
	var ring []Snapshot
	if err := store.Read(db.CollBackups, &ring); err != nil {
		return nil, err
	}
	return ring, nil
}

// RestoreAuto restores the newest ring entry, or an older one counted back
// from the end when back > 0.
func RestoreAuto(store *db.Store, back int) error {
	ring, err := ListAuto(store)
	if err != nil {
		return err
	}
	idx := len(ring) - 1 - back
	if idx < 0 || idx >= len(ring) {
		return fmt.Errorf("no automatic backup %d steps back (have %d)", back, len(ring))
	}
	return Restore(store, &ring[idx])
}
