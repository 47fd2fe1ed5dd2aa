package structures

import (
	"sort"
	"strconv"
	"strings"
)

// AttributeList is a canonical set of column indices: sorted ascending,
// duplicate-free, never mutated after construction. Two lists built from the
// same indices in any order are Equal and share a Key.
type AttributeList struct {
	indices []int
}

// NewAttributeList canonicalizes the given indices. The argument slice is not retained.
func NewAttributeList(indices ...int) AttributeList {
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	out := sorted[:0]
	for _, idx := range sorted {
		if len(out) > 0 && out[len(out)-1] == idx {
			continue
		}
		out = append(out, idx)
	}
	return AttributeList{indices: out}
}

// Indices returns a copy of the sorted indices
func (a AttributeList) Indices() []int {
	out := make([]int, len(a.indices))
	copy(out, a.indices)
	return out
}

func (a AttributeList) Len() int {
	return len(a.indices)
}

// Last returns the largest index, or -1 for an empty list
func (a AttributeList) Last() int {
	if len(a.indices) == 0 {
		return -1
	}
	return a.indices[len(a.indices)-1]
}

// Union merges two sorted index sets
func (a AttributeList) Union(other AttributeList) AttributeList {
	merged := make([]int, 0, len(a.indices)+len(other.indices))
	i, j := 0, 0
	for i < len(a.indices) && j < len(other.indices) {
		switch {
		case a.indices[i] < other.indices[j]:
			merged = append(merged, a.indices[i])
			i++
		case a.indices[i] > other.indices[j]:
			merged = append(merged, other.indices[j])
			j++
		default:
			merged = append(merged, a.indices[i])
			i++
			j++
		}
	}
	merged = append(merged, a.indices[i:]...)
	merged = append(merged, other.indices[j:]...)
	return AttributeList{indices: merged}
}

// Contains reports whether every index of other is also in a
func (a AttributeList) Contains(other AttributeList) bool {
	i := 0
	for _, idx := range other.indices {
		for i < len(a.indices) && a.indices[i] < idx {
			i++
		}
		if i == len(a.indices) || a.indices[i] != idx {
			return false
		}
	}
	return true
}

// SharesPrefix reports whether a and other have the same length and agree on
// every index except the last one. This is the lattice join rule.
func (a AttributeList) SharesPrefix(other AttributeList) bool {
	if len(a.indices) != len(other.indices) || len(a.indices) == 0 {
		return false
	}
	for i := 0; i < len(a.indices)-1; i++ {
		if a.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

func (a AttributeList) Equal(other AttributeList) bool {
	if len(a.indices) != len(other.indices) {
		return false
	}
	for i := range a.indices {
		if a.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

// Key is a collision-free map key for the index set
func (a AttributeList) Key() string {
	buf := make([]byte, 0, len(a.indices)*3)
	for i, idx := range a.indices {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(idx), 10)
	}
	return string(buf)
}

// Less orders lists by size first, then lexicographically
func (a AttributeList) Less(other AttributeList) bool {
	if len(a.indices) != len(other.indices) {
		return len(a.indices) < len(other.indices)
	}
	for i := range a.indices {
		if a.indices[i] != other.indices[i] {
			return a.indices[i] < other.indices[i]
		}
	}
	return false
}

// Names resolves the indices against attribute names
func (a AttributeList) Names(attributes []string) []string {
	names := make([]string, len(a.indices))
	for i, idx := range a.indices {
		if idx < len(attributes) {
			names[i] = attributes[idx]
		} else {
			names[i] = "#" + strconv.Itoa(idx)
		}
	}
	return names
}

func (a AttributeList) String() string {
	parts := make([]string, len(a.indices))
	for i, idx := range a.indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
