package common

// OrderedSet is an insertion-ordered string set: first occurrence wins, order
// preserved. It makes the dedup accumulators' contract explicit instead of
// relying on map iteration accidents.
type OrderedSet struct {
	values []string
	seen   map[string]struct{}
}

func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add inserts v if not already present and reports whether it was inserted.
func (s *OrderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

func (s *OrderedSet) Has(v string) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns the members in insertion order. The caller must not mutate
// the returned slice.
func (s *OrderedSet) Values() []string {
	return s.values
}
