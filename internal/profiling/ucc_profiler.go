package profiling

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/domain/run"
	"github.com/leengari/relprofile/internal/profiling/structures"
)

// UCCProfiler discovers all minimal unique column combinations of a relation
// with a level-wise lattice search over position list indexes.
//
// Level 1 holds the single columns. Level k combines two non-unique level
// k-1 lists that agree on everything but their last index, prunes strict
// supersets of UCCs already found, and intersects the parents' PLIs. Since
// every subset of a level-k candidate was decided before level k starts, the
// first combination found unique is minimal.
type UCCProfiler struct {
	notifier
	workers int
}

// Option configures a UCCProfiler
type Option func(*UCCProfiler)

// WithWorkers evaluates the intersections of one lattice level on up to n
// goroutines. Levels are still completed one at a time.
func WithWorkers(n int) Option {
	return func(p *UCCProfiler) {
		if n > 0 {
			p.workers = n
		}
	}
}

func NewUCCProfiler(opts ...Option) *UCCProfiler {
	p := &UCCProfiler{workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// candidate is a non-unique attribute combination waiting to be extended
type candidate struct {
	attrs structures.AttributeList
	pli   *structures.PositionListIndex
}

// join is a level-k candidate together with its two parents
type join struct {
	attrs       structures.AttributeList
	left, right *structures.PositionListIndex
}

// Profile returns every minimal UCC of rel, ordered by size and then by
// column indices. A relation with zero records is unique on every single column.
func (p *UCCProfiler) Profile(rel *relation.Relation) ([]structures.UCC, error) {
	if rel == nil {
		return nil, &errors.InvalidInputError{
			Reason:   "relation is nil",
			Expected: -1,
			Actual:   -1,
		}
	}
	if err := rel.Validate(); err != nil {
		return nil, err
	}

	r := run.New(run.KindUCC)
	defer r.Close()

	p.notify(Event{Type: EventRunStart, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Data: rel.RecordCount()})

	known := newUniqueStore(rel.ColumnCount())
	var found []structures.UCC

	emit := func(level int, attrs structures.AttributeList) {
		ucc := structures.UCC{Relation: rel, Attributes: attrs}
		found = append(found, ucc)
		known.add(attrs)
		p.notify(Event{Type: EventUCCFound, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: level, Data: ucc})
	}

	// Level 1: one PLI per column
	p.notify(Event{Type: EventLevelStart, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: 1, Data: rel.ColumnCount()})
	stats := LevelStats{Candidates: rel.ColumnCount()}
	var pending []candidate
	for c := 0; c < rel.ColumnCount(); c++ {
		pli, err := structures.ForColumn(rel, c)
		if err != nil {
			return nil, err
		}
		if pli.IsUnique() {
			emit(1, pli.Attributes())
			stats.Unique++
			continue
		}
		pending = append(pending, candidate{attrs: pli.Attributes(), pli: pli})
	}
	stats.Pending = len(pending)
	p.notify(Event{Type: EventLevelEnd, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: 1, Data: stats})

	// A single pending list has no partner to join with
	level := 1
	for len(pending) > 1 {
		level++
		p.notify(Event{Type: EventLevelStart, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: level, Data: len(pending)})

		joins, pruned := generateLevel(pending, known)
		stats = LevelStats{Candidates: len(joins) + pruned, Pruned: pruned, Intersections: len(joins)}

		plis, err := p.intersectAll(joins)
		if err != nil {
			return nil, fmt.Errorf("profile %s at level %d: %w", rel.Name, level, err)
		}

		// Results are recorded only after the whole level is evaluated, so
		// pruning at level k+1 sees every UCC of size <= k.
		next := make([]candidate, 0, len(joins))
		for i, j := range joins {
			if plis[i].IsUnique() {
				emit(level, j.attrs)
				stats.Unique++
				continue
			}
			next = append(next, candidate{attrs: j.attrs, pli: plis[i]})
		}
		stats.Pending = len(next)
		p.notify(Event{Type: EventLevelEnd, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: level, Data: stats})

		pending = next
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Attributes.Less(found[j].Attributes) })

	r.Close()
	p.notify(Event{Type: EventRunEnd, RunID: r.ID, Kind: r.Kind, Relation: rel.Name, Level: level,
		Data: RunSummary{Duration: r.Duration(), Results: len(found), Levels: level}})

	return found, nil
}

// generateLevel pairs pending lists that share all but their last index.
// It returns the surviving joins and the number of pruned supersets.
func generateLevel(pending []candidate, known *uniqueStore) ([]join, int) {
	sort.Slice(pending, func(i, j int) bool { return pending[i].attrs.Less(pending[j].attrs) })

	var joins []join
	pruned := 0
	for i := 0; i < len(pending); i++ {
		for j := i + 1; j < len(pending); j++ {
			// pending is sorted, so lists sharing a prefix are contiguous
			if !pending[i].attrs.SharesPrefix(pending[j].attrs) {
				break
			}

			merged := pending[i].attrs.Union(pending[j].attrs)
			if known.len() > 0 && known.prunes(merged) {
				pruned++
				continue
			}
			joins = append(joins, join{attrs: merged, left: pending[i].pli, right: pending[j].pli})
		}
	}
	return joins, pruned
}

func (p *UCCProfiler) intersectAll(joins []join) ([]*structures.PositionListIndex, error) {
	out := make([]*structures.PositionListIndex, len(joins))

	if p.workers <= 1 || len(joins) < 2 {
		for i, j := range joins {
			pli, err := j.left.Intersect(j.right)
			if err != nil {
				return nil, err
			}
			out[i] = pli
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, j := range joins {
		g.Go(func() error {
			pli, err := j.left.Intersect(j.right)
			if err != nil {
				return err
			}
			out[i] = pli
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
