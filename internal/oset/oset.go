// Package oset implements a small insertion-order-preserving set of
// strings. It exists because the generator needs deterministic,
// deduplicated symbol collections (lalr's symbolsOf and the grammar
// package's FIRST/FOLLOW sortedSet) and the generic Set/VSet hierarchy
// used elsewhere in the wild is more machinery than this project needs.
package oset

// Set is an insertion-order-preserving set of strings.
type Set struct {
	order []string
	index map[string]int
}

// New returns an empty Set.
func New() *Set {
	return &Set{index: map[string]int{}}
}

// Of returns a new Set containing the given elements, in the order given,
// skipping duplicates.
func Of(elems ...string) *Set {
	s := New()
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add appends element to the set if it is not already present. Returns
// true if the element was newly added.
func (s *Set) Add(element string) bool {
	if _, ok := s.index[element]; ok {
		return false
	}
	s.index[element] = len(s.order)
	s.order = append(s.order, element)
	return true
}

// Has returns whether element is a member of the set.
func (s *Set) Has(element string) bool {
	_, ok := s.index[element]
	return ok
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Elements returns the elements of the set in insertion order. The
// returned slice must not be mutated by callers.
func (s *Set) Elements() []string {
	return s.order
}

// Equal returns whether s and o contain the same elements, irrespective of
// order.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, e := range s.order {
		if !o.Has(e) {
			return false
		}
	}
	return true
}

// Copy returns a shallow copy of s.
func (s *Set) Copy() *Set {
	cp := New()
	for _, e := range s.order {
		cp.Add(e)
	}
	return cp
}
