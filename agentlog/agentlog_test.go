package agentlog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFileReadsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "agents.json"))
	entries, err := store.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty log, got %d entries", len(entries))
	}
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "agents.json"))
	logger := NewLogger(store)

	for _, agent := range []string{"a", "b", "c"} {
		if err := logger.Append(Entry{Agent: agent}); err != nil {
			t.Fatalf("append %q: %v", agent, err)
		}
	}

	entries, err := logger.Entries()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Agent != want {
			t.Errorf("entry %d: expected agent %q, got %q", i, want, entries[i].Agent)
		}
	}
}

type failingStore struct{}

func (failingStore) Read() ([]Entry, error) { return nil, errors.New("read failed") }
func (failingStore) Write([]Entry) error { return errors.New("write failed") }

func TestRecordSwallowsPersistenceFailure(t *testing.T) {
	logger := NewLogger(failingStore{})
	// Must not panic or surface the error.
	logger.Record("curl/7.68.0", "test-request")
}

func TestMemStoreRoundTrip(t *testing.T) {
	logger := NewLogger(&MemStore{})
	if err := logger.Append(Entry{Agent: "Mozilla/5.0"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	entries, _ := logger.Entries()
	if len(entries) != 1 || entries[0].Agent != "Mozilla/5.0" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
