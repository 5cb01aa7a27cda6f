package pool

// Stats is a point-in-time snapshot of a factory.
type Stats struct {
	Name        string
	Constructed uint64 // raw constructions, including pre-warm
	Created     uint64 // successful Create calls
	Reused      uint64 // Create calls served from the free list
	Released    uint64 // successful Release calls
	Rejected    uint64 // failed Create and Release calls
	Idle        int    // instances on the free list
	Active      int    // instances owned by callers
	Capacity    int    // 0 when unbounded
}

// Owned is the number of live instances the factory holds, idle or active.
func (s Stats) Owned() int {
	return s.Idle + s.Active
}

// Add returns the counter-wise sum of s and o, keeping s.Name. The result is
// bounded only when both inputs are.
func (s Stats) Add(o Stats) Stats {
	s.Constructed += o.Constructed
	s.Created += o.Created
	s.Reused += o.Reused
	s.Released += o.Released
	s.Rejected += o.Rejected
	s.Idle += o.Idle
	s.Active += o.Active
	if s.Capacity > 0 && o.Capacity > 0 {
		s.Capacity += o.Capacity
	} else {
		s.Capacity = 0
	}
	return s
}
