package profiling

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/profiling/structures"
	"github.com/leengari/relprofile/internal/profiling/testutil"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) ofType(t EventType) []Event {
	var out []Event
	for _, e := range m.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func TestUCCPairOnlyUniqueTogether(t *testing.T) {
	rel := testutil.CreatePairRelation(t)

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{0, 1}})
	assert.Equal(t, uccs[0].String(), "pairs[A, B]")
	assert.Assert(t, uccs[0].Relation == rel)
}

func TestUCCKeyColumnAndPair(t *testing.T) {
	rel := testutil.CreatePairRelationWithKey(t)

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{2}, {0, 1}})
	testutil.AssertMinimal(t, uccs, "keyed pairs")
}

func TestUCCPrunesSupersetsOfKnownUniques(t *testing.T) {
	rel := testutil.MustRelation(t, "pruned", []string{"const", "n", "s"},
		[]string{"z", "z", "z", "z"},
		[]string{"1", "1", "2", "2"},
		[]string{"x", "y", "x", "y"},
	)
	obs := &MockObserver{}
	p := NewUCCProfiler()
	p.AddObserver(obs)

	uccs, err := p.Profile(rel)
	assert.NilError(t, err)
	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{1, 2}})

	levelEnds := obs.ofType(EventLevelEnd)
	assert.Assert(t, is.Len(levelEnds, 3))
	third := levelEnds[2].Data.(LevelStats)
	assert.Equal(t, levelEnds[2].Level, 3)
	assert.Equal(t, third.Pruned, 1)
	assert.Equal(t, third.Intersections, 0)
}

func TestUCCEmptyRelationEveryColumnUnique(t *testing.T) {
	rel := testutil.MustRelation(t, "empty", []string{"a", "b", "c"}, []string{}, []string{}, []string{})

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{0}, {1}, {2}})
}

func TestUCCSingleRecordEveryColumnUnique(t *testing.T) {
	rel := testutil.MustRelation(t, "one", []string{"a", "b"}, []string{"x"}, []string{"x"})

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{0}, {1}})
}

func TestUCCNoColumns(t *testing.T) {
	rel, err := relation.New("nothing", nil, nil)
	assert.NilError(t, err)

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(uccs, 0))
}

func TestUCCDuplicateRowsHaveNoUCC(t *testing.T) {
	rel := testutil.MustRelation(t, "dups", []string{"a", "b", "c"},
		[]string{"1", "1", "2"},
		[]string{"x", "x", "y"},
		[]string{"p", "p", "q"},
	)
	obs := &MockObserver{}
	p := NewUCCProfiler()
	p.AddObserver(obs)

	uccs, err := p.Profile(rel)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(uccs, 0))

	end := obs.ofType(EventRunEnd)
	assert.Assert(t, is.Len(end, 1))
	assert.Equal(t, end[0].Data.(RunSummary).Levels, 3)
}

func TestUCCNullsAreEqualToEachOther(t *testing.T) {
	rel, err := relation.New("nulls", []string{"a", "b"}, [][]relation.Value{
		{relation.Null(), relation.Null(), relation.Str("1")},
		relation.Strings("x", "y", "x"),
	})
	assert.NilError(t, err)

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.NilError(t, err)
	assert.DeepEqual(t, testutil.UCCIndices(uccs), [][]int{{0, 1}})
}

func TestUCCRejectsRaggedRelation(t *testing.T) {
	rel := &relation.Relation{
		Name:       "ragged",
		Attributes: []string{"a", "b"},
		Columns: [][]relation.Value{
			relation.Strings("1", "2"),
			relation.Strings("1"),
		},
	}

	uccs, err := NewUCCProfiler().Profile(rel)
	assert.Assert(t, errors.IsInvalidInput(err))
	assert.Assert(t, uccs == nil)
}

func TestUCCRejectsNilRelation(t *testing.T) {
	obs := &MockObserver{}
	p := NewUCCProfiler()
	p.AddObserver(obs)

	uccs, err := p.Profile(nil)
	assert.Assert(t, errors.IsInvalidInput(err))
	assert.ErrorContains(t, err, "relation is nil")
	assert.Assert(t, uccs == nil)
	assert.Assert(t, is.Len(obs.Events, 0))
}

func TestUCCLifecycleEvents(t *testing.T) {
	rel := testutil.CreatePairRelationWithKey(t)
	obs := &MockObserver{}
	p := NewUCCProfiler()
	p.AddObserver(obs)

	uccs, err := p.Profile(rel)
	assert.NilError(t, err)

	assert.Assert(t, len(obs.Events) > 0)
	assert.Equal(t, obs.Events[0].Type, EventRunStart)
	assert.Equal(t, obs.Events[len(obs.Events)-1].Type, EventRunEnd)
	assert.Assert(t, is.Len(obs.ofType(EventUCCFound), len(uccs)))

	runID := obs.Events[0].RunID
	for _, e := range obs.Events {
		assert.Equal(t, e.RunID, runID)
		assert.Equal(t, e.Relation, "pairs_keyed")
		assert.Assert(t, !e.Timestamp.IsZero())
	}

	p.RemoveObserver(obs)
	before := len(obs.Events)
	_, err = p.Profile(rel)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(obs.Events, before))
}

// bruteForceMinimalUCCs enumerates every subset of columns
func bruteForceMinimalUCCs(columns [][]string) [][]int {
	n := len(columns)
	records := len(columns[0])
	unique := make(map[int]bool)

	for mask := 1; mask < 1<<n; mask++ {
		seen := make(map[string]bool)
		ok := true
		for r := 0; r < records && ok; r++ {
			var parts []string
			for c := 0; c < n; c++ {
				if mask&(1<<c) != 0 {
					parts = append(parts, columns[c][r])
				}
			}
			key := strings.Join(parts, "\x00")
			if seen[key] {
				ok = false
			}
			seen[key] = true
		}
		unique[mask] = ok
	}

	var out []structures.AttributeList
	for mask, ok := range unique {
		if !ok {
			continue
		}
		minimal := true
		for sub := (mask - 1) & mask; sub > 0; sub = (sub - 1) & mask {
			if unique[sub] {
				minimal = false
				break
			}
		}
		if !minimal {
			continue
		}
		var idx []int
		for c := 0; c < n; c++ {
			if mask&(1<<c) != 0 {
				idx = append(idx, c)
			}
		}
		out = append(out, structures.NewAttributeList(idx...))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	indices := make([][]int, len(out))
	for i, a := range out {
		indices[i] = a.Indices()
	}
	return indices
}

func TestUCCMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 40; trial++ {
		cols := 1 + rng.Intn(5)
		records := 1 + rng.Intn(12)
		columns := make([][]string, cols)
		attrs := make([]string, cols)
		for c := range columns {
			attrs[c] = "c" + strconv.Itoa(c)
			domain := 1 + rng.Intn(4)
			columns[c] = make([]string, records)
			for r := range columns[c] {
				columns[c][r] = strconv.Itoa(rng.Intn(domain))
			}
		}
		rel := testutil.MustRelation(t, "random", attrs, columns...)

		sequential, err := NewUCCProfiler().Profile(rel)
		assert.NilError(t, err)
		parallel, err := NewUCCProfiler(WithWorkers(4)).Profile(rel)
		assert.NilError(t, err)

		want := bruteForceMinimalUCCs(columns)
		assert.DeepEqual(t, testutil.UCCIndices(sequential), want)
		assert.DeepEqual(t, testutil.UCCIndices(parallel), testutil.UCCIndices(sequential))
		testutil.AssertMinimal(t, sequential, "random relation")
	}
}

func TestWithWorkersIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, NewUCCProfiler(WithWorkers(0)).workers, 1)
	assert.Equal(t, NewUCCProfiler(WithWorkers(3)).workers, 3)
}
