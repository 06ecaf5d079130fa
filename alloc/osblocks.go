package alloc

// osBlock records one region delegated directly to the OS page facade. The
// records form a side list rather than in-region headers, so the payload
// base is the reservation base itself.
type osBlock struct {
	region []byte // full reservation, released as a unit
	size   int    // payload bytes handed to the caller
	next   *osBlock
}

// osList is the singly linked list of outstanding OS-tier blocks. Blocks
// are created on demand and destroyed immediately on release, so the list
// stays short.
type osList struct {
	head  *osBlock
	count int
}

// insert records a fresh reservation and returns the payload slice.
func (l *osList) insert(region []byte, size int) []byte {
	l.head = &osBlock{region: region, size: size, next: l.head}
	l.count++
	return region[:size]
}

// remove unlinks the block whose payload starts at addr and returns its
// region, or nil when no block matches.
func (l *osList) remove(addr uintptr) []byte {
	var prev *osBlock
	for cur := l.head; cur != nil; prev, cur = cur, cur.next {
		if regionAddr(cur.region) != addr {
			continue
		}
		if prev == nil {
			l.head = cur.next
		} else {
			prev.next = cur.next
		}
		l.count--
		return cur.region
	}
	return nil
}
