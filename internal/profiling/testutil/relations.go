package testutil

import (
	"testing"

	"github.com/leengari/relprofile/internal/domain/relation"
)

// MustRelation builds a relation from string columns (all values non-null)
func MustRelation(t *testing.T, name string, attributes []string, columns ...[]string) *relation.Relation {
	t.Helper()
	cols := make([][]relation.Value, len(columns))
	for i, c := range columns {
		cols[i] = relation.Strings(c...)
	}
	rel, err := relation.New(name, attributes, cols)
	if err != nil {
		t.Fatalf("failed to build relation %s: %v", name, err)
	}
	return rel
}

// CreatePairRelation has columns A = [1,1,2,2] and B = [x,y,x,y]:
// neither column is unique on its own, together they are.
func CreatePairRelation(t *testing.T) *relation.Relation {
	t.Helper()
	return MustRelation(t, "pairs", []string{"A", "B"},
		[]string{"1", "1", "2", "2"},
		[]string{"x", "y", "x", "y"},
	)
}

// CreatePairRelationWithKey adds an all-distinct column C to CreatePairRelation
func CreatePairRelationWithKey(t *testing.T) *relation.Relation {
	t.Helper()
	return MustRelation(t, "pairs_keyed", []string{"A", "B", "C"},
		[]string{"1", "1", "2", "2"},
		[]string{"x", "y", "x", "y"},
		[]string{"1", "2", "3", "4"},
	)
}

// CreateUsersRelation creates a users relation with sample data
func CreateUsersRelation(t *testing.T) *relation.Relation {
	t.Helper()
	rel, err := relation.New("users", []string{"id", "username", "email", "country"}, [][]relation.Value{
		relation.Strings("1", "2", "3"),
		relation.Strings("alice", "bob", "charlie"),
		{relation.Str("alice@example.com"), relation.Null(), relation.Str("charlie@example.com")},
		relation.Strings("KE", "KE", "UG"),
	})
	if err != nil {
		t.Fatalf("failed to build users: %v", err)
	}
	return rel
}

// CreateOrdersRelation creates an orders relation referencing users.
// User 3 (charlie) has no orders.
func CreateOrdersRelation(t *testing.T) *relation.Relation {
	t.Helper()
	rel, err := relation.New("orders", []string{"id", "user_id", "product", "note"}, [][]relation.Value{
		relation.Strings("1", "2", "3"),
		relation.Strings("1", "1", "2"),
		relation.Strings("Laptop", "Mouse", "Keyboard"),
		{relation.Null(), relation.Null(), relation.Null()},
	})
	if err != nil {
		t.Fatalf("failed to build orders: %v", err)
	}
	return rel
}
