// ABOUTME: Tests for the SQLite fallback mirror
// ABOUTME: Covers upserts, full rebuilds and the disaster restore path

package sync

import (
	"path/filepath"
	"testing"

	"github.com/jiale-0528/mgr-sop/charm"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

func newTestMirror(t *testing.T) *Mirror {
	t.Helper()
	m, err := OpenMirror(filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("OpenMirror failed: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	client, cleanup := charm.NewTestClient(t)
	t.Cleanup(cleanup)
	return db.NewStore(client, "A123")
}

func TestMirrorSaveLoad(t *testing.T) {
	m := newTestMirror(t)

	if err := m.Save("mgr_customers/A123", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Upsert overwrites.
	if err := m.Save("mgr_customers/A123", []byte(`[{"id":"2"}]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := m.Load("mgr_customers/A123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `[{"id":"2"}]` {
		t.Errorf("unexpected data: %s", data)
	}

	missing, err := m.Load("nothing/here")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if missing != nil {
		t.Error("missing keys load as nil")
	}

	ts, err := m.UpdatedAt("mgr_customers/A123")
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if ts.IsZero() {
		t.Error("updated_at should be stamped")
	}
}

func TestMirrorRoundTripThroughStore(t *testing.T) {
	store := newTestStore(t)
	m := newTestMirror(t)

	if err := store.PutCustomer(&models.Customer{LifeAssuredName: "Tan"}); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}
	if err := store.PutKIVItem(&models.KIVItem{Name: "Wong"}); err != nil {
		t.Fatalf("PutKIVItem failed: %v", err)
	}

	n, err := MirrorAll(store, m)
	if err != nil {
		t.Fatalf("MirrorAll failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 mirrored collections, got %d", n)
	}

	// Wipe the KV and restore from the mirror.
	fresh := newTestStore(t)
	restored, err := RestoreFromMirror(fresh, m)
	if err != nil {
		t.Fatalf("RestoreFromMirror failed: %v", err)
	}
	if restored != 2 {
		t.Fatalf("expected 2 restored collections, got %d", restored)
	}
	customers, err := fresh.ListCustomers()
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(customers) != 1 || customers[0].LifeAssuredName != "Tan" {
		t.Errorf("restore lost customers: %+v", customers)
	}
}

func TestMirrorAsStoreFallback(t *testing.T) {
	store := newTestStore(t)
	m := newTestMirror(t)
	store.SetMirror(m)

	if err := store.PutCustomer(&models.Customer{LifeAssuredName: "Tan"}); err != nil {
		t.Fatalf("PutCustomer failed: %v", err)
	}

	// Every store write lands in the mirror as a side effect.
	data, err := m.Load("mgr_customers/A123")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("mirror should have received the write")
	}
}

func TestCheckStatus(t *testing.T) {
	store := newTestStore(t)
	m := newTestMirror(t)
	store.SetMirror(m)

	if err := store.PutGoal(&models.Goal{Title: "MDRT", Amount: 1}); err != nil {
		t.Fatalf("PutGoal failed: %v", err)
	}

	st, err := CheckStatus(m, "test-path", "A123", true)
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if st.Mirrored != 1 {
		t.Errorf("expected 1 mirrored collection, got %d", st.Mirrored)
	}
	if st.LastMirrorWrite.IsZero() {
		t.Error("last write time should be set")
	}

	// Nil mirror is a valid no-mirror state.
	st, err = CheckStatus(nil, "test-path", "A123", false)
	if err != nil {
		t.Fatalf("CheckStatus failed: %v", err)
	}
	if st.Mirrored != 0 {
		t.Error("no mirror means nothing mirrored")
	}
}
