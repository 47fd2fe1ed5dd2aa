package structures

import (
	"fmt"
	"sort"

	"github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
)

// Singleton marks a record that sits alone in its equivalence class
const Singleton = -1

// PositionListIndex is a stripped partition of the record positions [0, R):
// two records share a class iff they agree on every attribute of the list.
// Only classes with two or more records are kept; everything else is implicit.
//
// recordToClass has length R and maps each record to its class id, or Singleton.
type PositionListIndex struct {
	attributes    AttributeList
	origin        *relation.Relation // nil when built from loose values
	classes       [][]int
	recordToClass []int
}

// classPair identifies a refined class during intersection
type classPair struct {
	left  int
	right int
}

// FromValues builds the PLI of a single column. NULL is treated as a value of
// its own: two NULL cells land in the same class.
func FromValues(attributes AttributeList, values []relation.Value) *PositionListIndex {
	buckets := make(map[relation.Value]int)
	var groups [][]int

	for rowPos, val := range values {
		id, found := buckets[val]
		if !found {
			id = len(groups)
			buckets[val] = id
			groups = append(groups, nil)
		}
		groups[id] = append(groups[id], rowPos)
	}

	classes := strip(groups)
	return &PositionListIndex{
		attributes:    attributes,
		classes:       classes,
		recordToClass: mapRecordsToClasses(classes, len(values)),
	}
}

// ForColumn builds the PLI of column c of rel and remembers rel as its origin
func ForColumn(rel *relation.Relation, c int) (*PositionListIndex, error) {
	values, err := rel.Column(c)
	if err != nil {
		return nil, err
	}
	pli := FromValues(NewAttributeList(c), values)
	pli.origin = rel
	return pli, nil
}

// FromClasses builds a PLI from precomputed classes over totalRecords records
// of origin, which may be nil for classes not tied to a relation. Classes with
// fewer than two records are dropped and the kept ones are copied. A record
// outside [0, totalRecords) or listed in two classes is rejected.
func FromClasses(origin *relation.Relation, attributes AttributeList, classes [][]int, totalRecords int) (*PositionListIndex, error) {
	kept := strip(classes)
	for i, class := range kept {
		kept[i] = append([]int(nil), class...)
	}

	recordToClass := make([]int, totalRecords)
	for i := range recordToClass {
		recordToClass[i] = Singleton
	}
	for classID, class := range kept {
		for _, record := range class {
			if record < 0 || record >= totalRecords {
				return nil, &errors.InvalidInputError{
					Column:   attributes.String(),
					Reason:   fmt.Sprintf("record %d outside [0, %d)", record, totalRecords),
					Expected: -1,
					Actual:   -1,
				}
			}
			if recordToClass[record] != Singleton {
				return nil, &errors.InvalidInputError{
					Column:   attributes.String(),
					Reason:   fmt.Sprintf("record %d appears in more than one class", record),
					Expected: -1,
					Actual:   -1,
				}
			}
			recordToClass[record] = classID
		}
	}

	return &PositionListIndex{
		attributes:    attributes,
		origin:        origin,
		classes:       kept,
		recordToClass: recordToClass,
	}, nil
}

// Attributes returns the attribute combination this PLI partitions by
func (p *PositionListIndex) Attributes() AttributeList {
	return p.attributes
}

// Origin returns the relation the PLI was derived from, or nil
func (p *PositionListIndex) Origin() *relation.Relation {
	return p.origin
}

// IsUnique reports whether every record is alone in its class
func (p *PositionListIndex) IsUnique() bool {
	return len(p.classes) == 0
}

// Size returns the record count R the PLI was built over
func (p *PositionListIndex) Size() int {
	return len(p.recordToClass)
}

// ClassCount returns the number of non-singleton classes
func (p *PositionListIndex) ClassCount() int {
	return len(p.classes)
}

// ClassOf returns the class id of a record, or Singleton
func (p *PositionListIndex) ClassOf(record int) int {
	if record < 0 || record >= len(p.recordToClass) {
		return Singleton
	}
	return p.recordToClass[record]
}

// Classes returns a copy of the non-singleton classes
func (p *PositionListIndex) Classes() [][]int {
	out := make([][]int, len(p.classes))
	for i, class := range p.classes {
		out[i] = append([]int(nil), class...)
	}
	return out
}

// Partition returns the classes in canonical order: records sorted within a
// class, classes sorted by their smallest record. Two PLIs describe the same
// partition iff their Partitions are equal.
func (p *PositionListIndex) Partition() [][]int {
	out := p.Classes()
	for _, class := range out {
		sort.Ints(class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Intersect refines p by other and returns the PLI over the union of both
// attribute lists. Records that are singletons in other stay singletons.
// Both PLIs must come from the same relation (or both from none) and
// cover the same record count.
func (p *PositionListIndex) Intersect(other *PositionListIndex) (*PositionListIndex, error) {
	if err := p.checkCompatible(other); err != nil {
		return nil, err
	}

	refined := make(map[classPair]int)
	var groups [][]int

	for classID, class := range p.classes {
		for _, record := range class {
			otherID := other.recordToClass[record]
			if otherID == Singleton {
				continue
			}

			key := classPair{left: classID, right: otherID}
			id, found := refined[key]
			if !found {
				id = len(groups)
				refined[key] = id
				groups = append(groups, nil)
			}
			groups[id] = append(groups[id], record)
		}
	}

	classes := strip(groups)
	return &PositionListIndex{
		attributes:    p.attributes.Union(other.attributes),
		origin:        p.origin,
		classes:       classes,
		recordToClass: mapRecordsToClasses(classes, p.Size()),
	}, nil
}

func (p *PositionListIndex) checkCompatible(other *PositionListIndex) error {
	if other == nil {
		return errors.NewIncompatiblePLI("nil operand", -1, -1)
	}
	// A relation-bound PLI never combines with a loose one
	if p.origin != other.origin {
		return &errors.InvalidInputError{
			Relation: originName(p.origin),
			Reason: fmt.Sprintf("incompatible position list indexes: %s%s and %s%s come from different relations",
				originName(p.origin), p.attributes, originName(other.origin), other.attributes),
			Expected: -1,
			Actual:   -1,
		}
	}
	if p.Size() != other.Size() {
		return errors.NewIncompatiblePLI("record counts differ", p.Size(), other.Size())
	}
	return nil
}

func originName(rel *relation.Relation) string {
	if rel == nil {
		return "<loose>"
	}
	return rel.Name
}

func (p *PositionListIndex) String() string {
	return fmt.Sprintf("PLI%s{records=%d classes=%d}", p.attributes, p.Size(), len(p.classes))
}

// strip drops classes with fewer than two records
func strip(groups [][]int) [][]int {
	kept := make([][]int, 0, len(groups))
	for _, g := range groups {
		if len(g) > 1 {
			kept = append(kept, g)
		}
	}
	return kept
}

func mapRecordsToClasses(classes [][]int, totalRecords int) []int {
	mapping := make([]int, totalRecords)
	for i := range mapping {
		mapping[i] = Singleton
	}
	for classID, class := range classes {
		for _, record := range class {
			mapping[record] = classID
		}
	}
	return mapping
}
