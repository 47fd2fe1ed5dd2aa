package structures

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/relprofile/internal/domain/relation"
)

func TestAttributeListCanonicalForm(t *testing.T) {
	a := NewAttributeList(3, 1, 2, 1, 3)
	b := NewAttributeList(1, 2, 3)

	assert.DeepEqual(t, a.Indices(), []int{1, 2, 3})
	assert.Assert(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Last(), 3)
	assert.Equal(t, NewAttributeList().Last(), -1)
}

func TestAttributeListDoesNotRetainInput(t *testing.T) {
	in := []int{2, 0}
	a := NewAttributeList(in...)
	in[0] = 9

	assert.DeepEqual(t, a.Indices(), []int{0, 2})

	out := a.Indices()
	out[0] = 7
	assert.DeepEqual(t, a.Indices(), []int{0, 2})
}

func TestAttributeListUnion(t *testing.T) {
	u := NewAttributeList(0, 4).Union(NewAttributeList(4, 2, 6))
	assert.DeepEqual(t, u.Indices(), []int{0, 2, 4, 6})

	empty := NewAttributeList()
	assert.Assert(t, empty.Union(u).Equal(u))
}

func TestAttributeListKeyIsCollisionFree(t *testing.T) {
	assert.Assert(t, NewAttributeList(1, 12).Key() != NewAttributeList(11, 2).Key())
	assert.Assert(t, NewAttributeList(1, 2).Key() != NewAttributeList(12).Key())
}

func TestAttributeListContains(t *testing.T) {
	abc := NewAttributeList(0, 1, 2)

	assert.Assert(t, abc.Contains(NewAttributeList(0, 2)))
	assert.Assert(t, abc.Contains(abc))
	assert.Assert(t, abc.Contains(NewAttributeList()))
	assert.Assert(t, !abc.Contains(NewAttributeList(0, 3)))
	assert.Assert(t, !NewAttributeList(1).Contains(abc))
}

func TestAttributeListSharesPrefix(t *testing.T) {
	assert.Assert(t, NewAttributeList(0, 1, 2).SharesPrefix(NewAttributeList(0, 1, 5)))
	assert.Assert(t, NewAttributeList(3).SharesPrefix(NewAttributeList(4)))
	assert.Assert(t, !NewAttributeList(0, 1, 2).SharesPrefix(NewAttributeList(0, 2, 3)))
	assert.Assert(t, !NewAttributeList(0, 1).SharesPrefix(NewAttributeList(0, 1, 2)))
	assert.Assert(t, !NewAttributeList().SharesPrefix(NewAttributeList()))
}

func TestAttributeListOrdering(t *testing.T) {
	assert.Assert(t, NewAttributeList(5).Less(NewAttributeList(0, 1)))
	assert.Assert(t, NewAttributeList(0, 1).Less(NewAttributeList(0, 2)))
	assert.Assert(t, !NewAttributeList(0, 2).Less(NewAttributeList(0, 2)))
}

func TestAttributeListNames(t *testing.T) {
	names := NewAttributeList(2, 0, 7).Names([]string{"id", "name", "email"})
	assert.DeepEqual(t, names, []string{"id", "email", "#7"})
	assert.Equal(t, NewAttributeList(7, 2, 0).String(), "[0 2 7]")
}

func TestDependencyStrings(t *testing.T) {
	users, err := relation.New("users", []string{"id", "email"}, [][]relation.Value{
		relation.Strings("1"), relation.Strings("a@x"),
	})
	assert.NilError(t, err)

	ucc := UCC{Relation: users, Attributes: NewAttributeList(1, 0)}
	assert.Equal(t, ucc.String(), "users[id, email]")

	ind := IND{DependentRelation: users, DependentColumn: 0, ReferencedRelation: users, ReferencedColumn: 1}
	assert.Equal(t, ind.String(), "users.id ⊆ users.email")
}
