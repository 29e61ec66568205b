package particles

import "github.com/TheBitDrifter/mask"

type borrowID uint64

// access is what a cursor declares it will touch while open.
type access struct {
	components []Component
	exclusive  bool
}

type borrow struct {
	id        borrowID
	mask      mask.Mask
	exclusive bool
}

// borrows tracks open cursors. Shared borrows may overlap each other; an
// exclusive borrow may not overlap anything.
type borrows struct {
	nextID borrowID
	active []borrow
}

func (b *borrows) acquire(m mask.Mask, exclusive bool) (borrowID, error) {
	for _, other := range b.active {
		if !exclusive && !other.exclusive {
			continue
		}
		otherMask := other.mask
		if otherMask.ContainsAny(m) {
			return 0, BorrowConflictError{Exclusive: exclusive}
		}
	}
	b.nextID++
	b.active = append(b.active, borrow{id: b.nextID, mask: m, exclusive: exclusive})
	return b.nextID, nil
}

func (b *borrows) release(id borrowID) {
	for i, br := range b.active {
		if br.id == id {
			b.active = append(b.active[:i], b.active[i+1:]...)
			return
		}
	}
}

func (b *borrows) open() bool {
	return len(b.active) > 0
}
