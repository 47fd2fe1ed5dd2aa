package profiling

import (
	"fmt"

	"github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/domain/run"
	"github.com/leengari/relprofile/internal/profiling/structures"
)

// INDProfiler finds unary inclusion dependencies by testing every ordered
// pair of columns across the given relations for set containment.
// Quadratic in the number of columns.
type INDProfiler struct {
	notifier
}

func NewINDProfiler() *INDProfiler {
	return &INDProfiler{}
}

type valueSet map[string]struct{}

// Profile returns all unary INDs among the columns of relations, in scan order.
// A relation listed more than once is scanned once.
// includeNary must be false: n-ary discovery fails with a NotSupportedError.
func (p *INDProfiler) Profile(relations []*relation.Relation, includeNary bool) ([]structures.IND, error) {
	if includeNary {
		return nil, errors.NewNaryINDNotSupported()
	}

	for i, rel := range relations {
		if rel == nil {
			return nil, &errors.InvalidInputError{
				Reason:   fmt.Sprintf("relation %d is nil", i),
				Expected: -1,
				Actual:   -1,
			}
		}
		if err := rel.Validate(); err != nil {
			return nil, err
		}
	}

	relations = distinctRelations(relations)

	r := run.New(run.KindIND)
	defer r.Close()

	p.notify(Event{Type: EventRunStart, RunID: r.ID, Kind: r.Kind, Data: len(relations)})

	// Distinct non-null values, computed once per column
	sets := make([][]valueSet, len(relations))
	for i, rel := range relations {
		sets[i] = make([]valueSet, rel.ColumnCount())
		for c, col := range rel.Columns {
			sets[i][c] = collectValues(col)
		}
	}

	var found []structures.IND
	for di, dep := range relations {
		for dc := range dep.Columns {
			for ri, ref := range relations {
				for rc := range ref.Columns {
					if dep == ref && dc == rc {
						continue
					}
					if !isIncluded(sets[di][dc], sets[ri][rc]) {
						continue
					}

					ind := structures.IND{
						DependentRelation:  dep,
						DependentColumn:    dc,
						ReferencedRelation: ref,
						ReferencedColumn:   rc,
					}
					found = append(found, ind)
					p.notify(Event{Type: EventINDFound, RunID: r.ID, Kind: r.Kind, Relation: dep.Name, Data: ind})
				}
			}
		}
	}

	r.Close()
	p.notify(Event{Type: EventRunEnd, RunID: r.ID, Kind: r.Kind,
		Data: RunSummary{Duration: r.Duration(), Results: len(found)}})

	return found, nil
}

// distinctRelations drops repeated relation pointers, keeping first occurrences
func distinctRelations(relations []*relation.Relation) []*relation.Relation {
	seen := make(map[*relation.Relation]struct{}, len(relations))
	out := make([]*relation.Relation, 0, len(relations))
	for _, rel := range relations {
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		out = append(out, rel)
	}
	return out
}

func collectValues(column []relation.Value) valueSet {
	set := make(valueSet)
	for _, v := range column {
		if v.Valid {
			set[v.String] = struct{}{}
		}
	}
	return set
}

// isIncluded reports whether dependent is a non-empty subset of referenced.
// The empty set is never reported as included.
func isIncluded(dependent, referenced valueSet) bool {
	if len(dependent) == 0 || len(dependent) > len(referenced) {
		return false
	}
	for v := range dependent {
		if _, ok := referenced[v]; !ok {
			return false
		}
	}
	return true
}
