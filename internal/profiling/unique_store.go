package profiling

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/leengari/relprofile/internal/profiling/structures"
)

// uniqueStore holds the minimal UCCs found so far as bitsets over column
// indices, so the superset check per candidate is a few word-wise ANDs.
type uniqueStore struct {
	columns uint
	sets    []*bitset.BitSet
}

func newUniqueStore(columns int) *uniqueStore {
	return &uniqueStore{columns: uint(columns)}
}

func (s *uniqueStore) bitset(attrs structures.AttributeList) *bitset.BitSet {
	set := bitset.New(s.columns)
	for _, idx := range attrs.Indices() {
		set.Set(uint(idx))
	}
	return set
}

func (s *uniqueStore) add(attrs structures.AttributeList) {
	s.sets = append(s.sets, s.bitset(attrs))
}

func (s *uniqueStore) len() int {
	return len(s.sets)
}

// prunes reports whether attrs is a strict superset of a stored UCC
func (s *uniqueStore) prunes(attrs structures.AttributeList) bool {
	candidate := s.bitset(attrs)
	for _, known := range s.sets {
		if candidate.IsStrictSuperSet(known) {
			return true
		}
	}
	return false
}
