package storage

import (
	"encoding/binary"

	"github.com/itzwaris/minsql/wal"
)

// CreateTable records a table's schema as one WAL entry and flushes it
// before returning.
func (h *Handle) CreateTable(tableName string, schemaJSON []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.log.Append(&wal.Entry{Type: wal.Insert, Data: schemaJSON}); err != nil {
		return err
	}
	return h.log.Flush()
}

// InsertRow allocates a monotonic row id, records an INSERT WAL entry
// for it, flushes the WAL, and returns the assigned id. Actual page
// placement of the row is a caller concern (see package doc).
func (h *Handle) InsertRow(tableName string, row []byte) (uint64, error) {
	rowID := h.nextRowID.Add(1)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.log.Append(&wal.Entry{Type: wal.Insert, Data: row}); err != nil {
		return 0, err
	}
	if err := h.log.Flush(); err != nil {
		return 0, err
	}
	return rowID, nil
}

// UpdateRows records an UPDATE WAL entry for an update against
// tableName and returns a count of zero: row-level predicate matching
// and page application are out of scope for the core — the testable
// contract is that the WAL record exists, and that a caller replaying
// it can recover both predicate and row.
func (h *Handle) UpdateRows(tableName string, predicate []byte, row []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.log.Append(&wal.Entry{Type: wal.Update, Data: encodeUpdatePayload(predicate, row)}); err != nil {
		return 0, err
	}
	if err := h.log.Flush(); err != nil {
		return 0, err
	}
	return 0, nil
}

// encodeUpdatePayload packs predicate and row into one WAL entry's Data,
// predicate length-prefixed so DecodeUpdatePayload can split them back
// apart; row runs to the end of the payload and needs no length of its
// own.
func encodeUpdatePayload(predicate, row []byte) []byte {
	buf := make([]byte, 4+len(predicate)+len(row))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(predicate)))
	copy(buf[4:4+len(predicate)], predicate)
	copy(buf[4+len(predicate):], row)
	return buf
}

// DecodeUpdatePayload splits an UPDATE WAL entry's Data back into its
// predicate and row, as encoded by UpdateRows. It returns false if data
// is too short to hold the declared predicate length.
func DecodeUpdatePayload(data []byte) (predicate, row []byte, ok bool) {
	if len(data) < 4 {
		return nil, nil, false
	}
	predLen := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) < 4+predLen {
		return nil, nil, false
	}
	return data[4 : 4+predLen], data[4+predLen:], true
}

// DeleteRows is symmetric to UpdateRows.
func (h *Handle) DeleteRows(tableName string, predicate []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.log.Append(&wal.Entry{Type: wal.Delete, Data: predicate}); err != nil {
		return 0, err
	}
	if err := h.log.Flush(); err != nil {
		return 0, err
	}
	return 0, nil
}

// Checkpoint flushes every dirty page, appends a CHECKPOINT WAL entry,
// flushes the WAL, and persists the checkpoint ledger. The ledger entry
// is advisory: Recover always replays from byte 0 regardless of it.
func (h *Handle) Checkpoint() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.pool.FlushAll(); err != nil {
		return err
	}

	lsn, err := h.log.Append(&wal.Entry{Type: wal.Checkpoint})
	if err != nil {
		return err
	}
	if err := h.log.Flush(); err != nil {
		return err
	}

	return h.ledger.Save(lsn)
}

// Recover replays the WAL from the beginning, invoking apply for every
// well-formed entry in lsn order. The per-type apply logic is the
// caller's concern; Recover only guarantees ordered, exactly-once
// delivery and idempotence for a well-formed log.
func (h *Handle) Recover(apply wal.ApplyFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.ledger.Load()
	h.logger.WithField("last_checkpoint_lsn", rec.LSN).Info("starting recovery")

	return h.log.Replay(apply)
}
