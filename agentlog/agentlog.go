// Package agentlog persists the User-Agent values observed by the
// request pipeline. The log is a single JSON array target that grows
// by one entry per recorded request, preserving insertion order.
package agentlog

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	logTag         = "[agentlog]"
	envLogPath     = "AGENT_LOG_PATH"
	defaultLogPath = "agents.json"
)

var (
	defaultLogger *Logger
	once          sync.Once
)

// Default returns the process-wide logger over the file target named
// by the AGENT_LOG_PATH env var.
func Default() *Logger {
	once.Do(func() {
		path := os.Getenv(envLogPath)
		if path == "" {
			path = defaultLogPath
		}
		defaultLogger = NewLogger(NewFileStore(path))
	})
	return defaultLogger
}

// Entry is one logged User-Agent record.
type Entry struct {
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Store reads and rewrites the persisted list of entries. A missing
// target reads as an empty list, not an error.
type Store interface {
	Read() ([]Entry, error)
	Write([]Entry) error
}

// FileStore persists the entries as a JSON array in a single file.
// Every write fully replaces the previous content. Appends through a
// FileStore are read-modify-write: two overlapping appenders can race
// and lose an entry, and no locking is provided here.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read returns the persisted entries. A missing file yields an empty list.
func (fs *FileStore) Read() ([]Entry, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Write replaces the persisted content with the given entries.
func (fs *FileStore) Write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0644)
}

// MemStore keeps the entries in memory. It is meant for tests.
type MemStore struct {
	Entries []Entry
}

// Read returns the stored entries.
func (ms *MemStore) Read() ([]Entry, error) {
	entries := make([]Entry, len(ms.Entries))
	copy(entries, ms.Entries)
	return entries, nil
}

// Write replaces the stored entries.
func (ms *MemStore) Write(entries []Entry) error {
	ms.Entries = make([]Entry, len(entries))
	copy(ms.Entries, entries)
	return nil
}

// Logger appends entries to a store.
type Logger struct {
	store Store
}

// NewLogger returns a logger over the given store.
func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

// Append adds the entry to the end of the persisted list.
func (l *Logger) Append(e Entry) error {
	entries, err := l.store.Read()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return l.store.Write(entries)
}

// Entries returns the persisted entries in insertion order.
func (l *Logger) Entries() ([]Entry, error) {
	return l.store.Read()
}

// Record appends an entry for the given agent and request id. A
// persistence failure is logged operationally and swallowed so that
// request handling never fails on account of the agent log.
func (l *Logger) Record(agent, requestID string) {
	entry := Entry{
		Agent:     agent,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
	if err := l.Append(entry); err != nil {
		log.Errorln(logTag, ": error persisting agent log entry:", err)
	}
}
