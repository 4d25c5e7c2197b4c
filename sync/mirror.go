// ABOUTME: SQLite fallback mirror receiving a second copy of every collection write
// ABOUTME: Survives a lost or reset KV store and supports full restore from disk

package sync

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Mirror is a local SQLite copy of the collection store. It implements
// db.Mirror so the store can push writes into it, and it can be read back
// when the primary KV is lost.
type Mirror struct {
	conn *sql.DB
}

const mirrorSchema = `
CREATE TABLE IF NOT EXISTS sync_data (
	key        TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// OpenMirror opens (or creates) the mirror database at path.
func OpenMirror(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(mirrorSchema); err != nil {
		conn.Close()
		return nil, err
	}
	return &Mirror{conn: conn}, nil
}

// Save upserts one collection's bytes. Called by the store on every write.
func (m *Mirror) Save(key string, data []byte) error {
	_, err := m.conn.Exec(
		`INSERT INTO sync_data (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now())
	return err
}

// Load returns the mirrored bytes for a key, nil when absent.
func (m *Mirror) Load(key string) ([]byte, error) {
	var data []byte
	err := m.conn.QueryRow(`SELECT data FROM sync_data WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// UpdatedAt returns the last write time for a key, zero when absent.
func (m *Mirror) UpdatedAt(key string) (time.Time, error) {
	var t time.Time
	err := m.conn.QueryRow(`SELECT updated_at FROM sync_data WHERE key = ?`, key).Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Keys lists every mirrored key.
func (m *Mirror) Keys() ([]string, error) {
	rows, err := m.conn.Query(`SELECT key FROM sync_data ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (m *Mirror) Close() error {
	return m.conn.Close()
}
