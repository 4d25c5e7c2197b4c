// ABOUTME: Sync orchestration between the KV store, the cloud and the SQLite mirror
// ABOUTME: Full mirror rebuilds, disaster restore, and a status summary

package sync

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/db"
)

// DefaultMirrorPath is where the fallback mirror lives unless configured.
func DefaultMirrorPath() string {
	return filepath.Join(xdg.DataHome, charm.AppName, "mirror.db")
}

func mirrorKey(collection, agent string) string {
	return collection + "/" + agent
}

// MirrorAll pushes every collection the store currently holds into the
// mirror. Used to seed a fresh mirror or repair a stale one.
func MirrorAll(store *db.Store, m *Mirror) (int, error) {
	copied := 0
	for _, coll := range db.Collections {
		data, err := store.RawRead(coll)
		if err != nil {
			return copied, err
		}
		if len(data) == 0 {
			continue
		}
		if err := m.Save(mirrorKey(coll, store.Agent()), data); err != nil {
			return copied, err
		}
		copied++
	}
	log.Info("mirror rebuilt", "collections", copied)
	return copied, nil
}

// RestoreFromMirror copies every mirrored collection back into the store.
// This is the disaster path for a lost or reset KV database.
func RestoreFromMirror(store *db.Store, m *Mirror) (int, error) {
	restored := 0
	for _, coll := range db.Collections {
		data, err := m.Load(mirrorKey(coll, store.Agent()))
		if err != nil {
			return restored, err
		}
		if len(data) == 0 {
			continue
		}
		if err := store.RawWrite(coll, data); err != nil {
			return restored, err
		}
		restored++
	}
	log.Info("restored from mirror", "collections", restored)
	return restored, nil
}

// PullCloud syncs the KV store against the cloud backend, bringing down
// writes made on other machines.
func PullCloud(client *charm.Client) error {
	return client.Sync()
}

// Status summarizes the sync state of one agent's data.
type Status struct {
	CloudEnabled    bool
	MirrorPath      string
	Mirrored        int
	LastMirrorWrite time.Time
}

// CheckStatus inspects the mirror without modifying anything. m may be nil
// when no mirror is configured.
func CheckStatus(m *Mirror, path, agent string, cloudEnabled bool) (Status, error) {
	st := Status{CloudEnabled: cloudEnabled, MirrorPath: path}
	if m == nil {
		return st, nil
	}
	for _, coll := range db.Collections {
		t, err := m.UpdatedAt(mirrorKey(coll, agent))
		if err != nil {
			return st, err
		}
		if t.IsZero() {
			continue
		}
		st.Mirrored++
		if t.After(st.LastMirrorWrite) {
			st.LastMirrorWrite = t
		}
	}
	return st, nil
}
