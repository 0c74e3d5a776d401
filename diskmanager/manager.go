// Package diskmanager is the persistent storage of numbered pages in one
// heap file. It owns the file descriptor for pages.dat and nothing else
// — synchronization across readers/writers is the buffer pool's job.
package diskmanager

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"

	"github.com/itzwaris/minsql/errs"
	"github.com/itzwaris/minsql/logging"
	"github.com/itzwaris/minsql/page"
)

// Manager maps page_id -> bytes at offset page_id*page.Size within a
// single pages.dat file.
type Manager struct {
	mu       sync.Mutex
	file     *os.File
	numPages uint32

	log *logrus.Entry
}

// New opens or creates <data_dir>/pages.dat and computes num_pages from
// its current size.
func New(dataDir string) (*Manager, error) {
	path := filepath.Join(dataDir, "pages.dat")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, err.Error())
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.ErrIO, err.Error())
	}

	m := &Manager{
		file:     f,
		numPages: uint32(info.Size() / page.Size),
		log:      logging.Component("diskmanager"),
	}
	return m, nil
}

// Close releases the underlying file descriptor.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.file.Close(); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	return nil
}

// NumPages returns the current page count.
func (m *Manager) NumPages() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.numPages
}

// Read seeks and reads one page. It returns (nil, nil) when pageID is
// beyond the current page count, and a wrapped errs.ErrIO on a short
// read or seek failure. A successfully read page starts with
// Dirty=false, PinCount=1 so the caller holds the only pin.
func (m *Manager) Read(pageID uint32) (*page.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pageID >= m.numPages {
		return nil, nil
	}

	pg := page.New()
	offset := int64(pageID) * page.Size
	n, err := m.file.ReadAt(pg.Data[:], offset)
	if err != nil || n != page.Size {
		return nil, errs.Wrapf(errs.ErrIO, "read page %d: short read (%d bytes, err=%v)", pageID, n, err)
	}

	pg.DecodeHeader()
	if err := verifyChecksum(pg); err != nil {
		return nil, err
	}

	pg.Dirty = false
	pg.PinCount = 1
	return pg, nil
}

// Write seeks to page.page_id*page.Size, writes Size bytes, then fsyncs.
// On success the page's dirty flag is cleared. A short write or failed
// fsync returns errs.ErrIO and leaves the dirty flag untouched so the
// caller can retry.
func (m *Manager) Write(pg *page.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stampChecksum(pg)
	pg.EncodeHeader()

	offset := int64(pg.Header.PageID) * page.Size
	n, err := m.file.WriteAt(pg.Data[:], offset)
	if err != nil || n != page.Size {
		return errs.Wrapf(errs.ErrIO, "write page %d: short write (%d bytes, err=%v)", pg.Header.PageID, n, err)
	}

	if err := m.file.Sync(); err != nil {
		return errs.Wrapf(errs.ErrIO, "fsync page %d: %v", pg.Header.PageID, err)
	}

	pg.Dirty = false
	return nil
}

// Alloc zeroes a fresh page at the tail of the heap file, writes it
// without fsync (the next flush or checkpoint covers it), and returns it
// pinned and dirty. page_id is never reused once assigned.
func (m *Manager) Alloc() (*page.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pg := page.New()
	pg.Header.PageID = m.numPages
	pg.Header.Lower = page.HeaderSize
	pg.Header.Upper = page.Size
	pg.Header.Flags = 0
	pg.Header.LSN = 0
	pg.Dirty = true
	pg.PinCount = 1
	pg.EncodeHeader()

	offset := int64(pg.Header.PageID) * page.Size
	n, err := m.file.WriteAt(pg.Data[:], offset)
	if err != nil || n != page.Size {
		return nil, errs.Wrapf(errs.ErrIO, "alloc page %d: short write (%d bytes, err=%v)", pg.Header.PageID, n, err)
	}

	m.numPages++
	m.log.WithField("page_id", pg.Header.PageID).Debug("allocated page")
	return pg, nil
}

// stampChecksum computes the xxhash64 of the page with the checksum
// field zeroed, and stores the low 32 bits into the header.
func stampChecksum(pg *page.Page) {
	pg.Header.Checksum = 0
	pg.EncodeHeader()
	sum := xxhash.Sum64(pg.Data[:])
	pg.Header.Checksum = uint32(sum)
}

// verifyChecksum recomputes the checksum the same way stampChecksum did
// and compares it against the stored value, returning errs.ErrCorruption
// on mismatch. A page whose stored checksum is 0 is not verified at all;
// this covers pages written by Alloc, which does not stamp a checksum.
// Only a page with a nonzero, wrong checksum is reported as corruption.
func verifyChecksum(pg *page.Page) error {
	stored := pg.Header.Checksum
	if stored == 0 {
		return nil
	}
	scratch := pg.Data
	var zeroed page.Page
	zeroed.Data = scratch
	zeroed.Header = pg.Header
	zeroed.Header.Checksum = 0
	zeroed.EncodeHeader()
	sum := uint32(xxhash.Sum64(zeroed.Data[:]))
	if sum != stored {
		return errs.Wrapf(errs.ErrCorruption, "page %d: checksum mismatch (stored=%x computed=%x)", pg.Header.PageID, stored, sum)
	}
	return nil
}
