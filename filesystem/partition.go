package filesystem

// Partition is the root folder of a FileSystem. It has no parent and a
// fixed capacity that bounds the total size of every file beneath it.
// Every file creation anywhere in the tree checks capacity here.
type Partition struct {
	Folder
	capacity uint64
}

// Capacity returns the fixed capacity in bytes
func (p *Partition) Capacity() uint64 {
	return p.capacity
}

// Remaining returns the number of bytes still available
func (p *Partition) Remaining() uint64 {
	p.fs.mu.Lock()
	defer p.fs.mu.Unlock()
	return p.remainingLocked()
}

func (p *Partition) remainingLocked() uint64 {
	used := p.sizeLocked()
	if used > p.capacity {
		return 0
	}
	return p.capacity - used
}

// CheckRemainingSize fails with ErrCapacityExceeded if desired bytes would
// not fit. Filling the partition exactly to capacity is allowed.
func (p *Partition) CheckRemainingSize(desired uint64) error {
	p.fs.mu.Lock()
	defer p.fs.mu.Unlock()
	return p.checkRemainingSizeLocked(desired)
}

func (p *Partition) checkRemainingSizeLocked(desired uint64) error {
	used := p.sizeLocked()
	// the subtraction must never wrap
	if used > p.capacity || desired > p.capacity-used {
		return capacityError(desired, p.remainingLocked(), p.capacity)
	}
	return nil
}
