// Package wal is an append-only write-ahead log: buffered group-commit
// writes, and sequential replay after a crash. A log file is one flat
// sequence of self-describing entries; lsn always equals an entry's byte
// offset from the start of the file at the time it was assigned.
package wal

import (
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/itzwaris/minsql/errs"
	"github.com/itzwaris/minsql/logging"
)

// BufferSize is the default user-space write buffer (spec §6).
const BufferSize = 65536

// WAL is one append-only log file with a buffered writer and a mutex
// guarding every field below.
type WAL struct {
	mu sync.Mutex

	file        *os.File
	buffer      []byte
	bufferPos   int
	bufferCap   int
	nextLSN     uint64
	lastFsynLSN uint64

	log *logrus.Entry
}

// Open opens or creates <data_dir>/wal.log and initializes next_lsn from
// the current file size, using BufferSize for the write buffer.
func Open(dataDir string) (*WAL, error) {
	return OpenWithBufferSize(dataDir, BufferSize)
}

// OpenWithBufferSize is Open with a caller-chosen write buffer size.
// bufferSize<=0 falls back to BufferSize.
func OpenWithBufferSize(dataDir string, bufferSize int) (*WAL, error) {
	if bufferSize <= 0 {
		bufferSize = BufferSize
	}

	path := filepath.Join(dataDir, "wal.log")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, err.Error())
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.Wrap(errs.ErrIO, err.Error())
	}

	w := &WAL{
		file:      f,
		buffer:    make([]byte, bufferSize),
		bufferCap: bufferSize,
		nextLSN:   uint64(info.Size()),
		log:       logging.Component("wal"),
	}
	return w, nil
}

// Close flushes any buffered entries and closes the file.
func (w *WAL) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.Close(); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	return nil
}

// Append assigns entry the next lsn, buffers it (flushing first if the
// buffer can't hold it), and returns the assigned lsn. It returns
// lsn=0 as a failure sentinel on a flush error, per spec §4.4 — callers
// must check the accompanying error, not just lsn==0, since a real
// first-entry lsn at file offset 0 is indistinguishable from the
// sentinel by value alone. A payload longer than 65535 bytes cannot be
// described by the entry's 16-bit length field and is rejected with
// errs.ErrUsage without touching the log.
func (w *WAL) Append(e *Entry) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(e.Data) > math.MaxUint16 {
		return 0, errs.Wrapf(errs.ErrUsage, "append: payload of %d bytes exceeds the %d-byte entry limit", len(e.Data), math.MaxUint16)
	}

	size := e.encodedSize()
	if w.bufferPos+size > w.bufferCap {
		if err := w.flushLocked(); err != nil {
			return 0, err
		}
	}

	if size > w.bufferCap {
		// Entry larger than the whole buffer: bypass buffering and
		// write it directly, still under lsn/group-commit accounting.
		return w.appendOversizeLocked(e, size)
	}

	lsn := w.nextLSN
	e.encode(w.buffer[w.bufferPos:w.bufferPos+size], lsn)
	w.bufferPos += size
	w.nextLSN += uint64(size)

	return lsn, nil
}

// appendOversizeLocked handles an entry that can never fit in the
// buffer at all (bigger than the WAL's configured buffer). It is written straight to the
// file and fsynced immediately, matching the buffered path's durability
// once Flush is called — here we fsync unconditionally since there is
// no buffer state left to flush later. Must be called with w.mu held
// and the buffer already empty.
func (w *WAL) appendOversizeLocked(e *Entry, size int) (uint64, error) {
	lsn := w.nextLSN
	buf := make([]byte, size)
	e.encode(buf, lsn)

	n, err := w.file.Write(buf)
	if err != nil || n != size {
		return 0, errs.Wrapf(errs.ErrIO, "append oversize entry: short write (%d bytes, err=%v)", n, err)
	}
	if err := w.file.Sync(); err != nil {
		return 0, errs.Wrapf(errs.ErrIO, "append oversize entry: fsync: %v", err)
	}

	w.nextLSN += uint64(size)
	w.lastFsynLSN = w.nextLSN
	w.log.WithFields(logrus.Fields{"lsn": lsn, "size": humanize.Bytes(uint64(size))}).Warn("appended oversize WAL entry, bypassing buffer")
	return lsn, nil
}

// Flush writes the buffer then fsyncs. Every entry with lsn less than or
// equal to the last-appended lsn at flush-start is durable once Flush
// returns OK.
func (w *WAL) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *WAL) flushLocked() error {
	if w.bufferPos == 0 {
		return nil
	}

	n, err := w.file.Write(w.buffer[:w.bufferPos])
	if err != nil || n != w.bufferPos {
		return errs.Wrapf(errs.ErrIO, "wal flush: short write (%d bytes, err=%v)", n, err)
	}
	if err := w.file.Sync(); err != nil {
		return errs.Wrapf(errs.ErrIO, "wal flush: fsync: %v", err)
	}

	w.log.WithField("bytes", humanize.Bytes(uint64(w.bufferPos))).Debug("flushed WAL buffer")
	w.lastFsynLSN = w.nextLSN
	w.bufferPos = 0
	return nil
}

// FlushedLSN returns the log offset up to which entries are known to be
// durable: every entry with an lsn below it was fsynced by the last
// successful Flush or oversize append. It is 0 until the first such
// fsync made through this WAL value.
func (w *WAL) FlushedLSN() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastFsynLSN
}
