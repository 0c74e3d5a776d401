// Package bufferpool bounds the number of pages resident in memory,
// routes reads through a cache, holds dirty pages until flush, and
// refuses to evict a page anyone still has pinned.
package bufferpool

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/itzwaris/minsql/diskmanager"
	"github.com/itzwaris/minsql/logging"
	"github.com/itzwaris/minsql/page"
)

// DefaultCapacity is the default number of resident pages (spec §6).
const DefaultCapacity = 1024

type entry struct {
	page       *page.Page
	pageID     uint32
	lastAccess uint64
	valid      bool
}

// Pool is a fixed-size, pin-aware page cache sitting in front of one
// diskmanager.Manager. All operations are serialized by a single mutex;
// there is no reader/writer distinction (spec §5).
type Pool struct {
	mu            sync.Mutex
	entries       []entry
	byPageID      map[uint32]int
	capacity      int
	accessCounter uint64

	dm  *diskmanager.Manager
	log *logrus.Entry
}

// New creates a pool with the given capacity over dm. capacity<=0 uses
// DefaultCapacity.
func New(dm *diskmanager.Manager, capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{
		entries:  make([]entry, capacity),
		byPageID: make(map[uint32]int, capacity),
		capacity: capacity,
		dm:       dm,
		log:      logging.Component("bufferpool"),
	}
}

// GetPage returns the requested page, pinned. On a cache hit it bumps
// last_access and the pin count. On a miss it evicts an unpinned victim
// (flushing it through the disk manager if dirty) to make room, then
// reads the page from disk. It returns (nil, nil) when every resident
// page is pinned and no victim can be found — not an error, per spec §4.3.
func (p *Pool) GetPage(pageID uint32) (*page.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if idx, ok := p.byPageID[pageID]; ok {
		e := &p.entries[idx]
		p.accessCounter++
		e.lastAccess = p.accessCounter
		e.page.PinCount++
		return e.page, nil
	}

	slot, err := p.makeRoom()
	if err != nil {
		return nil, err
	}
	if slot < 0 {
		p.log.WithField("page_id", pageID).Warn("no evictable victim, all pages pinned")
		return nil, nil
	}

	pg, err := p.dm.Read(pageID)
	if err != nil {
		return nil, err
	}
	if pg == nil {
		return nil, nil
	}

	pg.PinCount = 1
	p.accessCounter++
	p.entries[slot] = entry{page: pg, pageID: pageID, lastAccess: p.accessCounter, valid: true}
	p.byPageID[pageID] = slot

	return pg, nil
}

// makeRoom returns a free or evicted slot index, or -1 if the pool is at
// capacity and no unpinned victim exists. Must be called with p.mu held.
func (p *Pool) makeRoom() (int, error) {
	for i := range p.entries {
		if !p.entries[i].valid {
			return i, nil
		}
	}

	victim := -1
	var minAccess uint64 = ^uint64(0)
	for i := range p.entries {
		e := &p.entries[i]
		if e.page.PinCount == 0 && e.lastAccess < minAccess {
			minAccess = e.lastAccess
			victim = i
		}
	}
	if victim < 0 {
		return -1, nil
	}

	e := &p.entries[victim]
	if e.page.Dirty {
		if err := p.dm.Write(e.page); err != nil {
			return -1, err
		}
	}
	p.log.WithField("page_id", e.pageID).Debug("evicted page")
	delete(p.byPageID, e.pageID)
	p.entries[victim] = entry{}

	return victim, nil
}

// UnpinPage decrements the pin count for page if it's positive.
func (p *Pool) UnpinPage(pg *page.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pg.PinCount > 0 {
		pg.PinCount--
	}
}

// FlushPage writes page through the disk manager and clears its dirty
// flag on success.
func (p *Pool) FlushPage(pg *page.Page) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dm.Write(pg)
}

// FlushAll writes every dirty resident page, stopping and returning the
// first error.
func (p *Pool) FlushAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.entries {
		e := &p.entries[i]
		if e.valid && e.page.Dirty {
			if err := p.dm.Write(e.page); err != nil {
				return err
			}
		}
	}
	return nil
}
