// Package profiling discovers structural metadata over relations: minimal
// unique column combinations and unary inclusion dependencies.
//
// Each Profile call is self-contained. Profilers hold only their options and
// observers, so one profiler may be reused for many relations, though not
// from several goroutines at once.
package profiling

import (
	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/profiling/structures"
)

// ProfileUCC returns all minimal UCCs of rel using a sequential profiler
func ProfileUCC(rel *relation.Relation) ([]structures.UCC, error) {
	return NewUCCProfiler().Profile(rel)
}

// ProfileIND returns all unary INDs among relations.
// includeNary = true fails with a NotSupportedError.
func ProfileIND(relations []*relation.Relation, includeNary bool) ([]structures.IND, error) {
	return NewINDProfiler().Profile(relations, includeNary)
}
