package wal

import (
	"io"

	"github.com/itzwaris/minsql/errs"
)

// ApplyFunc is called once per entry, in lsn order, during Replay. The
// per-type apply logic is a caller concern (spec §4.4); this package
// only guarantees ordered, exactly-once delivery of well-formed entries.
type ApplyFunc func(*Entry) error

// Replay seeks to zero, reads the whole log into memory, and invokes
// apply for each entry in order. Entries whose declared length would
// extend past end-of-file, or whose CRC fails, are treated as a
// truncated tail: replay stops cleanly without error. Replay is
// idempotent for a well-formed log — calling it any number of times on
// the same file visits the same entries in the same order.
func (w *WAL) Replay(apply ApplyFunc) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	size, err := w.file.Seek(0, io.SeekEnd)
	if err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	if size == 0 {
		return nil
	}

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}

	buf := make([]byte, size)
	n, err := io.ReadFull(w.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return errs.Wrap(errs.ErrIO, err.Error())
	}
	buf = buf[:n]

	if _, err := w.file.Seek(0, io.SeekEnd); err != nil {
		return errs.Wrap(errs.ErrIO, err.Error())
	}

	offset := 0
	for offset < len(buf) {
		entry, consumed, ok := decodeEntry(buf[offset:])
		if !ok {
			break
		}
		if err := apply(entry); err != nil {
			return err
		}
		offset += consumed
	}

	return nil
}
