package wal

import (
	"encoding/binary"
	"hash/crc32"
)

// EntryType identifies the kind of mutation a WAL entry records.
type EntryType uint16

const (
	Insert     EntryType = 1
	Update     EntryType = 2
	Delete     EntryType = 3
	Commit     EntryType = 4
	Abort      EntryType = 5
	Checkpoint EntryType = 6
)

// headerSize is the fixed portion of every on-disk entry:
// lsn(8) + transaction_id(4) + logical_time(8) + type(2) + length(2) + crc(4).
const headerSize = 28

// Entry is one WAL record. LSN is assigned by the WAL at append time and
// equals the byte offset of the entry within the log file.
type Entry struct {
	LSN           uint64
	TransactionID uint32
	LogicalTime   uint64
	Type          EntryType
	Data          []byte
}

// encodedSize is the total on-disk size of e, header plus payload.
func (e *Entry) encodedSize() int {
	return headerSize + len(e.Data)
}

// encode writes e into buf (which must be at least e.encodedSize() long)
// with the given lsn, and returns the number of bytes written. The CRC32
// covers every field except the CRC slot itself.
func (e *Entry) encode(buf []byte, lsn uint64) int {
	binary.LittleEndian.PutUint64(buf[0:8], lsn)
	binary.LittleEndian.PutUint32(buf[8:12], e.TransactionID)
	binary.LittleEndian.PutUint64(buf[12:20], e.LogicalTime)
	binary.LittleEndian.PutUint16(buf[20:22], uint16(e.Type))
	binary.LittleEndian.PutUint16(buf[22:24], uint16(len(e.Data)))
	copy(buf[headerSize:], e.Data)

	crc := crc32.ChecksumIEEE(buf[0:24])
	crc = crc32.Update(crc, crc32.IEEETable, buf[headerSize:e.encodedSize()])
	binary.LittleEndian.PutUint32(buf[24:28], crc)

	return e.encodedSize()
}

// decodeEntry reads one entry starting at buf[0]. It returns
// (nil, 0, false) when buf is too short to hold a full header, when the
// declared length would extend past len(buf) (a truncated tail), or when
// the CRC doesn't match (also treated as a truncated/corrupt tail per
// the replay contract — see Replay in replay.go). Otherwise it returns the decoded
// entry and the number of bytes consumed.
func decodeEntry(buf []byte) (*Entry, int, bool) {
	if len(buf) < headerSize {
		return nil, 0, false
	}

	lsn := binary.LittleEndian.Uint64(buf[0:8])
	txnID := binary.LittleEndian.Uint32(buf[8:12])
	logicalTime := binary.LittleEndian.Uint64(buf[12:20])
	typ := binary.LittleEndian.Uint16(buf[20:22])
	length := binary.LittleEndian.Uint16(buf[22:24])
	storedCRC := binary.LittleEndian.Uint32(buf[24:28])

	total := headerSize + int(length)
	if total > len(buf) {
		return nil, 0, false
	}

	crc := crc32.ChecksumIEEE(buf[0:24])
	crc = crc32.Update(crc, crc32.IEEETable, buf[headerSize:total])
	if crc != storedCRC {
		return nil, 0, false
	}

	data := make([]byte, length)
	copy(data, buf[headerSize:total])

	return &Entry{
		LSN:           lsn,
		TransactionID: txnID,
		LogicalTime:   logicalTime,
		Type:          EntryType(typ),
		Data:          data,
	}, total, true
}
