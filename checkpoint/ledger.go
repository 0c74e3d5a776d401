// Package checkpoint persists a small advisory record of the last
// checkpoint's LSN next to the WAL, so recover() can log how far a prior
// checkpoint reached. It is not load-bearing for correctness: recover()
// still replays the WAL from byte 0 regardless of what the ledger says.
package checkpoint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/itzwaris/minsql/errs"
)

// Record is the last successful checkpoint's position.
type Record struct {
	LSN       uint64 `json:"lsn"`
	Timestamp int64  `json:"timestamp"`
}

// Ledger reads and atomically rewrites checkpoint.json in a data
// directory.
type Ledger struct {
	mu   sync.Mutex
	path string
}

// New returns a ledger rooted at <data_dir>/checkpoint.json. No file is
// created until the first Save.
func New(dataDir string) *Ledger {
	return &Ledger{path: filepath.Join(dataDir, "checkpoint.json")}
}

// Save atomically writes {lsn, now} via a temp-file-write + fsync +
// rename, so a crash mid-write never leaves a half-written ledger.
func (l *Ledger) Save(lsn uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := Record{LSN: lsn, Timestamp: time.Now().Unix()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}

	f, err := os.OpenFile(tmp, os.O_RDWR, 0644)
	if err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	f.Close()

	if err := os.Rename(tmp, l.path); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}

	if dir, err := os.Open(filepath.Dir(l.path)); err == nil {
		dir.Sync()
		dir.Close()
	}

	return nil
}

// Load returns the last saved record, or the zero record if none exists
// or the file is unreadable/corrupt — a missing or broken ledger just
// means recover() starts from LSN 0, which is always safe.
func (l *Ledger) Load() Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return Record{}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}
	}
	return rec
}
