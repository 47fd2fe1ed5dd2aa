package profiling

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/leengari/relprofile/internal/domain/errors"
	"github.com/leengari/relprofile/internal/domain/relation"
	"github.com/leengari/relprofile/internal/profiling/testutil"
)

func TestINDSubsetAcrossRelations(t *testing.T) {
	r1 := testutil.MustRelation(t, "R1", []string{"X"}, []string{"1", "2", "3"})
	r2 := testutil.MustRelation(t, "R2", []string{"Y"}, []string{"1", "2", "3", "4"})

	inds, err := NewINDProfiler().Profile([]*relation.Relation{r1, r2}, false)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.INDStrings(inds), []string{"R1.X ⊆ R2.Y"})
	assert.Assert(t, inds[0].DependentRelation == r1)
	assert.Equal(t, inds[0].ReferencedColumn, 0)
}

func TestINDNaryNotSupported(t *testing.T) {
	r1 := testutil.MustRelation(t, "R1", []string{"X"}, []string{"1"})
	obs := &MockObserver{}
	p := NewINDProfiler()
	p.AddObserver(obs)

	inds, err := p.Profile([]*relation.Relation{r1}, true)
	assert.Assert(t, errors.IsNotSupported(err))
	assert.ErrorContains(t, err, "n-ary")
	assert.Assert(t, inds == nil)
	assert.Assert(t, is.Len(obs.Events, 0))
}

func TestINDWithinOneRelationSkipsSelf(t *testing.T) {
	rel := testutil.MustRelation(t, "R", []string{"a", "b"},
		[]string{"1", "2", "2"},
		[]string{"2", "1", "1"},
	)

	inds, err := NewINDProfiler().Profile([]*relation.Relation{rel}, false)
	assert.NilError(t, err)

	assert.DeepEqual(t, testutil.INDStrings(inds), []string{"R.a ⊆ R.b", "R.b ⊆ R.a"})
}

func TestINDNullsIgnoredAndEmptyNeverIncluded(t *testing.T) {
	users := testutil.CreateUsersRelation(t)
	orders := testutil.CreateOrdersRelation(t)

	inds, err := NewINDProfiler().Profile([]*relation.Relation{users, orders}, false)
	assert.NilError(t, err)

	got := testutil.INDStrings(inds)
	assert.Assert(t, is.Contains(got, "orders.user_id ⊆ users.id"))
	assert.Assert(t, is.Contains(got, "orders.id ⊆ users.id"))
	assert.Assert(t, is.Contains(got, "users.id ⊆ orders.id"))

	for _, ind := range inds {
		assert.Assert(t, ind.String() != "users.id ⊆ orders.user_id")
		assert.Assert(t, ind.DependentName() != "orders.note", "all-null column must not be a dependent")
		assert.Assert(t, ind.ReferencedName() != "orders.note", "all-null column contains nothing")
	}
}

func TestINDSameRelationListedTwice(t *testing.T) {
	single := testutil.MustRelation(t, "S", []string{"a"}, []string{"1", "2"})

	inds, err := NewINDProfiler().Profile([]*relation.Relation{single, single}, false)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(inds, 0))

	rel := testutil.MustRelation(t, "R", []string{"a", "b"},
		[]string{"1", "2"},
		[]string{"2", "1"},
	)
	other := testutil.MustRelation(t, "T", []string{"c"}, []string{"1", "2", "3"})

	inds, err = NewINDProfiler().Profile([]*relation.Relation{rel, other, rel}, false)
	assert.NilError(t, err)
	assert.DeepEqual(t, testutil.INDStrings(inds), []string{
		"R.a ⊆ R.b",
		"R.a ⊆ T.c",
		"R.b ⊆ R.a",
		"R.b ⊆ T.c",
	})
}

func TestINDEmptyInput(t *testing.T) {
	inds, err := NewINDProfiler().Profile(nil, false)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(inds, 0))
}

func TestINDRejectsMalformedRelations(t *testing.T) {
	_, err := NewINDProfiler().Profile([]*relation.Relation{nil}, false)
	assert.Assert(t, errors.IsInvalidInput(err))

	ragged := &relation.Relation{Name: "bad", Attributes: []string{"a"}}
	_, err = NewINDProfiler().Profile([]*relation.Relation{ragged}, false)
	assert.Assert(t, errors.IsInvalidInput(err))
}

func TestINDLifecycleEvents(t *testing.T) {
	r1 := testutil.MustRelation(t, "R1", []string{"X"}, []string{"1", "2", "3"})
	r2 := testutil.MustRelation(t, "R2", []string{"Y"}, []string{"1", "2", "3", "4"})
	obs := &MockObserver{}
	p := NewINDProfiler()
	p.AddObserver(obs)

	_, err := p.Profile([]*relation.Relation{r1, r2}, false)
	assert.NilError(t, err)

	assert.Assert(t, is.Len(obs.Events, 3))
	assert.Equal(t, obs.Events[0].Type, EventRunStart)
	assert.Equal(t, obs.Events[1].Type, EventINDFound)
	assert.Equal(t, obs.Events[1].Relation, "R1")
	assert.Equal(t, obs.Events[2].Type, EventRunEnd)
	assert.Equal(t, obs.Events[2].Data.(RunSummary).Results, 1)
}
