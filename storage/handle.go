// Package storage ties the page manager, buffer pool, WAL, and arena
// together behind one handle and exposes a coarse row-level API over
// them. Row-level mutations serialize their intent to the WAL before
// acknowledging the caller; actual page-level application is left to
// whatever owns the indexes and schema, per the handle's facade role.
package storage

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/itzwaris/minsql/arena"
	"github.com/itzwaris/minsql/bufferpool"
	"github.com/itzwaris/minsql/checkpoint"
	"github.com/itzwaris/minsql/diskmanager"
	"github.com/itzwaris/minsql/errs"
	"github.com/itzwaris/minsql/logging"
	"github.com/itzwaris/minsql/page"
	"github.com/itzwaris/minsql/wal"
)

// Handle owns one heap file, one buffer pool, one WAL, and one arena
// rooted at a single data directory.
type Handle struct {
	mu sync.Mutex

	dataDir string
	dm      *diskmanager.Manager
	pool    *bufferpool.Pool
	log     *wal.WAL
	arena   *arena.Arena
	ledger  *checkpoint.Ledger

	nextRowID atomic.Uint64

	logger *logrus.Entry
}

// Init ensures dataDir exists and constructs the page manager, buffer
// pool, WAL, and arena in that order. On any constructor failure it
// tears down whatever was already built, in reverse order, and returns
// the error.
func Init(dataDir string, opts *Options) (*Handle, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil && !os.IsExist(err) {
		return nil, errs.Wrap(errs.ErrIO, err.Error())
	}

	dm, err := diskmanager.New(dataDir)
	if err != nil {
		return nil, err
	}

	pool := bufferpool.New(dm, opts.BufferPoolCapacity)

	w, err := wal.OpenWithBufferSize(dataDir, opts.WALBufferSize)
	if err != nil {
		dm.Close()
		return nil, err
	}

	a := arena.New(opts.ArenaCapacity)

	h := &Handle{
		dataDir: dataDir,
		dm:      dm,
		pool:    pool,
		log:     w,
		arena:   a,
		ledger:  checkpoint.New(dataDir),
		logger:  logging.Component("storage"),
	}
	return h, nil
}

// Shutdown flushes all dirty buffer pool pages, flushes the WAL, then
// closes the WAL and disk manager. The arena needs no teardown.
func (h *Handle) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.pool.FlushAll(); err != nil {
		return err
	}
	if err := h.log.Close(); err != nil {
		return err
	}
	if err := h.dm.Close(); err != nil {
		return err
	}
	h.logger.Info("storage handle shut down")
	return nil
}

// GetPage fetches and pins a page by id, passing through to the buffer
// pool.
func (h *Handle) GetPage(pageID uint32) (*page.Page, error) {
	return h.pool.GetPage(pageID)
}

// PutPage marks a page dirty; persistence happens later on flush or
// eviction.
func (h *Handle) PutPage(pg *page.Page) {
	pg.Dirty = true
}

// FlushPage writes a page through immediately.
func (h *Handle) FlushPage(pg *page.Page) error {
	return h.pool.FlushPage(pg)
}

// ReleasePage unpins a page, allowing it to be evicted.
func (h *Handle) ReleasePage(pg *page.Page) {
	h.pool.UnpinPage(pg)
}

// AllocPage allocates a fresh page at the tail of the heap file.
func (h *Handle) AllocPage() (*page.Page, error) {
	return h.dm.Alloc()
}

// Arena returns the handle's bump allocator.
func (h *Handle) Arena() *arena.Arena {
	return h.arena
}
