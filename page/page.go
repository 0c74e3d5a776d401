// Package page defines the on-disk page format shared by the page
// manager, buffer pool, and every index that needs raw tuple storage:
// a fixed 8 KiB block with a slot directory growing forward from the
// header and tuple bytes growing backward from the end of the page.
//
//	[ PageHeader 24B ][ LinePointer, LinePointer, ... → ][ free ][ ← tuple, tuple, ... ]
//	0                 24                                lower   upper               PageSize
//
// Free space is the gap [lower, upper). A LinePointer's offset always
// points into the tuple region; its flags bit 0 marks the tuple deleted.
package page

import "encoding/binary"

const (
	// Size is the fixed size of every page, in bytes.
	Size = 8192

	// HeaderSize is the encoded size of PageHeader.
	HeaderSize = 24

	// LinePointerSize is the encoded size of one slot entry.
	LinePointerSize = 6

	// flagDeleted is LinePointer.Flags bit 0.
	flagDeleted uint16 = 1 << 0
)

// Header is the 24-byte fixed header at the start of every page,
// encoded little-endian exactly as laid out here.
type Header struct {
	PageID   uint32
	Checksum uint32
	Lower    uint16
	Upper    uint16
	Special  uint16
	Flags    uint16
	LSN      uint64
}

// LinePointer is one 6-byte slot directory entry.
type LinePointer struct {
	Offset uint16
	Length uint16
	Flags  uint16
}

// Page is one in-memory 8 KiB page plus the pin/dirty bookkeeping the
// buffer pool needs. Data always holds exactly Size bytes. Header is not
// kept in step with Data automatically: EncodeHeader copies Header into
// Data and DecodeHeader reads it back, while the slot helpers here read
// and write Data directly.
type Page struct {
	Header   Header
	Data     [Size]byte
	Dirty    bool
	PinCount uint16
}

// New returns a page with a zeroed header and Data, ready to be
// formatted by the caller (the page manager's Alloc does this for
// freshly allocated pages).
func New() *Page {
	return &Page{}
}

// EncodeHeader writes p.Header into p.Data[0:HeaderSize].
func (p *Page) EncodeHeader() {
	b := p.Data[0:HeaderSize]
	binary.LittleEndian.PutUint32(b[0:4], p.Header.PageID)
	binary.LittleEndian.PutUint32(b[4:8], p.Header.Checksum)
	binary.LittleEndian.PutUint16(b[8:10], p.Header.Lower)
	binary.LittleEndian.PutUint16(b[10:12], p.Header.Upper)
	binary.LittleEndian.PutUint16(b[12:14], p.Header.Special)
	binary.LittleEndian.PutUint16(b[14:16], p.Header.Flags)
	binary.LittleEndian.PutUint64(b[16:24], p.Header.LSN)
}

// DecodeHeader reads p.Data[0:HeaderSize] into p.Header.
func (p *Page) DecodeHeader() {
	b := p.Data[0:HeaderSize]
	p.Header.PageID = binary.LittleEndian.Uint32(b[0:4])
	p.Header.Checksum = binary.LittleEndian.Uint32(b[4:8])
	p.Header.Lower = binary.LittleEndian.Uint16(b[8:10])
	p.Header.Upper = binary.LittleEndian.Uint16(b[10:12])
	p.Header.Special = binary.LittleEndian.Uint16(b[12:14])
	p.Header.Flags = binary.LittleEndian.Uint16(b[14:16])
	p.Header.LSN = binary.LittleEndian.Uint64(b[16:24])
}

// NumSlots returns the number of LinePointer entries currently installed.
func (p *Page) NumSlots() uint16 {
	return (p.Header.Lower - HeaderSize) / LinePointerSize
}

func slotOffset(slot uint16) int {
	return HeaderSize + int(slot)*LinePointerSize
}

func (p *Page) readSlot(slot uint16) LinePointer {
	off := slotOffset(slot)
	b := p.Data[off : off+LinePointerSize]
	return LinePointer{
		Offset: binary.LittleEndian.Uint16(b[0:2]),
		Length: binary.LittleEndian.Uint16(b[2:4]),
		Flags:  binary.LittleEndian.Uint16(b[4:6]),
	}
}

func (p *Page) writeSlot(slot uint16, lp LinePointer) {
	off := slotOffset(slot)
	b := p.Data[off : off+LinePointerSize]
	binary.LittleEndian.PutUint16(b[0:2], lp.Offset)
	binary.LittleEndian.PutUint16(b[2:4], lp.Length)
	binary.LittleEndian.PutUint16(b[4:6], lp.Flags)
}
