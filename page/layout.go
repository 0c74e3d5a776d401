package page

import "github.com/itzwaris/minsql/errs"

// FreeSpace returns the number of unused bytes between the slot
// directory and the tuple region.
func (p *Page) FreeSpace() int {
	return int(p.Header.Upper) - int(p.Header.Lower)
}

// AddTuple installs tuple at the top of the tuple region and appends a
// new LinePointer for it, returning the new slot index. It fails with
// errs.ErrUsage, leaving the page untouched, when there isn't enough
// free space for the tuple plus one LinePointer.
func (p *Page) AddTuple(tuple []byte) (uint16, error) {
	required := len(tuple) + LinePointerSize
	if p.FreeSpace() < required {
		return 0, errs.Wrapf(errs.ErrUsage, "add_tuple: need %d bytes, have %d", required, p.FreeSpace())
	}

	slot := p.NumSlots()
	newUpper := p.Header.Upper - uint16(len(tuple))
	copy(p.Data[newUpper:p.Header.Upper], tuple)

	p.writeSlot(slot, LinePointer{Offset: newUpper, Length: uint16(len(tuple)), Flags: 0})

	p.Header.Lower += LinePointerSize
	p.Header.Upper = newUpper
	p.Dirty = true
	p.EncodeHeader()

	return slot, nil
}

// GetTuple returns a copy of the tuple bytes at slot, or nil if the slot
// is out of range or has been deleted. The returned slice is owned by
// the caller; it does not alias Page.Data.
func (p *Page) GetTuple(slot uint16) []byte {
	if slot >= p.NumSlots() {
		return nil
	}
	lp := p.readSlot(slot)
	if lp.Flags&flagDeleted != 0 {
		return nil
	}
	out := make([]byte, lp.Length)
	copy(out, p.Data[lp.Offset:lp.Offset+lp.Length])
	return out
}

// DeleteTuple marks slot's LinePointer deleted without reclaiming its
// space. It fails with errs.ErrUsage when slot is out of range.
func (p *Page) DeleteTuple(slot uint16) error {
	if slot >= p.NumSlots() {
		return errs.Wrapf(errs.ErrUsage, "delete_tuple: slot %d out of range (num_slots=%d)", slot, p.NumSlots())
	}
	lp := p.readSlot(slot)
	lp.Flags |= flagDeleted
	p.writeSlot(slot, lp)
	p.Dirty = true
	return nil
}
