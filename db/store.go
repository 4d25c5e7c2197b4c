// ABOUTME: Agent-scoped document store over the charm KV backend
// ABOUTME: Provides whole-collection read/write primitives and ULID id generation

package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// Collection keys. The original workbook names are kept so existing exports
// remain importable.
const (
	CollCustomers      = "mgr_customers"
	CollGoals          = "mgr_goals"
	CollFamily         = "mgr_family"
	CollKIV            = "mgr_kiv"
	CollMonthly        = "mgr_monthly"
	CollVisits         = "mgr_visits"
	CollReferrals      = "mgr_referrals"
	CollCalendarEvents = "mgr_calendar_events"
	CollQuadrant       = "mgr_quadrant"
	CollBackups        = "mgr_backups"
)

// Collections lists the record collections included in sync and backup.
var Collections = []string{
	CollCustomers,
	CollGoals,
	CollFamily,
	CollKIV,
	CollMonthly,
	CollVisits,
	CollReferrals,
	CollCalendarEvents,
	CollQuadrant,
}

var (
	ErrNoAgent       = errors.New("no agent selected")
	ErrInvalidRecord = errors.New("invalid record")
)

// KV is the key-value surface the store needs. *charm.Client satisfies it.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
}

// Mirror receives a best-effort second copy of every write. The sync
// package's SQLite mirror implements it.
type Mirror interface {
	Save(key string, data []byte) error
}

// Store namespaces every collection by agent code. All repository methods
// follow the same discipline: read the whole collection, modify in memory,
// write the whole collection back. There is no locking or versioning; two
// concurrent writers can clobber each other, matching the single-user model.
type Store struct {
	kv     KV
	agent  string
	mirror Mirror
}

// NewStore creates a store scoped to the given agent code.
func NewStore(kv KV, agentCode string) *Store {
	return &Store{kv: kv, agent: agentCode}
}

// SetMirror attaches a local fallback mirror. Mirror failures are logged,
// never surfaced.
func (s *Store) SetMirror(m Mirror) {
	s.mirror = m
}

// Agent returns the agent code this store is scoped to.
func (s *Store) Agent() string {
	return s.agent
}

// NewID returns a fresh record id. ULIDs replace the timestamp tokens of
// earlier data: still time-ordered, but collision-safe in loops.
func NewID() string {
	return ulid.Make().String()
}

func (s *Store) key(collection string) []byte {
	return []byte(collection + "/" + s.agent)
}

// Read unmarshals a collection into out. A missing key leaves out at its
// zero value: an absent collection is an empty one.
func (s *Store) Read(collection string, out interface{}) error {
	if s.agent == "" {
		return ErrNoAgent
	}
	data, err := s.kv.Get(s.key(collection))
	if err != nil {
		// Treat any lookup failure as an empty collection. Worst case is a
		// view over no data, never a crash.
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("corrupt collection %s: %w", collection, err)
	}
	return nil
}

// Write marshals and persists a whole collection, mirroring best-effort.
func (s *Store) Write(collection string, v interface{}) error {
	if s.agent == "" {
		return ErrNoAgent
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal collection %s: %w", collection, err)
	}
	if err := s.kv.Set(s.key(collection), data); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	if s.mirror != nil {
		if err := s.mirror.Save(string(s.key(collection)), data); err != nil {
			log.Warn("fallback mirror write failed", "collection", collection, "err", err)
		}
	}
	return nil
}

// RawRead returns the stored bytes for a collection, nil when absent.
func (s *Store) RawRead(collection string) ([]byte, error) {
	if s.agent == "" {
		return nil, ErrNoAgent
	}
	data, err := s.kv.Get(s.key(collection))
	if err != nil {
		return nil, nil
	}
	return data, nil
}

// RawWrite stores pre-marshaled bytes for a collection (import paths).
func (s *Store) RawWrite(collection string, data []byte) error {
	if s.agent == "" {
		return ErrNoAgent
	}
	if err := s.kv.Set(s.key(collection), data); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}
