package procs

// PIDSet accumulates matched PIDs across queries. Membership is a set;
// List keeps first-seen order without duplicates.
type PIDSet struct {
	order []string
	seen  map[string]struct{}
}

// NewPIDSet returns an empty set.
func NewPIDSet() *PIDSet {
	return &PIDSet{seen: make(map[string]struct{})}
}

// Add inserts pids, ignoring ones already present.
func (s *PIDSet) Add(pids ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, pid := range pids {
		if _, ok := s.seen[pid]; ok {
			continue
		}
		s.seen[pid] = struct{}{}
		s.order = append(s.order, pid)
	}
}

// Contains reports whether pid was matched.
func (s *PIDSet) Contains(pid string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[pid]
	return ok
}

// Len returns the number of distinct PIDs.
func (s *PIDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// List returns the PIDs in first-seen order.
func (s *PIDSet) List() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}
