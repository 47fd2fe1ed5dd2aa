package loader

// DatabaseMeta is the meta.json at the root of a database directory
type DatabaseMeta struct {
	Name    string   `json:"name"`
	Version int      `json:"version"`
	Tables  []string `json:"tables,omitempty"`
}

// TableMeta is the meta.json of a table directory. Only the column order
// matters for profiling; constraint flags are read so that existing
// database directories load unchanged.
type TableMeta struct {
	Name         string       `json:"name"`
	Columns      []ColumnMeta `json:"columns"`
	LastInsertID int64        `json:"last_insert_id,omitempty"`
	RowCount     int64        `json:"row_count,omitempty"`
}

type ColumnMeta struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	PrimaryKey    bool   `json:"primary_key"`
	Unique        bool   `json:"unique"`
	NotNull       bool   `json:"not_null"`
	AutoIncrement bool   `json:"auto_increment,omitempty"`
}

// Row is one record of data.json, keyed by column name
type Row map[string]interface{}
