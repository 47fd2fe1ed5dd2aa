package structures

import (
	"fmt"
	"strings"

	"github.com/leengari/relprofile/internal/domain/relation"
)

// UCC states that no two records of Relation agree on all of Attributes.
// Minimality is guaranteed by the search that produced it, not checked here.
type UCC struct {
	Relation   *relation.Relation
	Attributes AttributeList
}

// Names returns the attribute names of the combination
func (u UCC) Names() []string {
	return u.Attributes.Names(u.Relation.Attributes)
}

func (u UCC) String() string {
	return fmt.Sprintf("%s[%s]", u.Relation.Name, strings.Join(u.Names(), ", "))
}

// IND states that the distinct non-null values of the dependent column are a
// non-empty subset of those of the referenced column.
type IND struct {
	DependentRelation  *relation.Relation
	DependentColumn    int
	ReferencedRelation *relation.Relation
	ReferencedColumn   int
}

func (i IND) DependentName() string {
	return columnName(i.DependentRelation, i.DependentColumn)
}

func (i IND) ReferencedName() string {
	return columnName(i.ReferencedRelation, i.ReferencedColumn)
}

func (i IND) String() string {
	return fmt.Sprintf("%s ⊆ %s", i.DependentName(), i.ReferencedName())
}

func columnName(rel *relation.Relation, c int) string {
	if c >= 0 && c < len(rel.Attributes) {
		return rel.Name + "." + rel.Attributes[c]
	}
	return fmt.Sprintf("%s.#%d", rel.Name, c)
}
