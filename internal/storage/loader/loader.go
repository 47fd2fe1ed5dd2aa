// Package loader reads relations from files: table directories in the
// meta.json + data.json layout, database directories of such tables, and CSV files.
package loader

import (
	"github.com/leengari/relprofile/internal/domain/relation"
)

// Database is a named set of relations loaded from one directory
type Database struct {
	Name      string
	Path      string
	Relations []*relation.Relation
}
