package relation

// Value is a single nullable cell. The zero value is NULL.
type Value struct {
	String string
	Valid  bool // Valid is true if String is not NULL
}

// Str wraps a non-null string
func Str(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns the NULL value
func Null() Value {
	return Value{}
}

// Strings builds a column of non-null values
func Strings(values ...string) []Value {
	col := make([]Value, len(values))
	for i, s := range values {
		col[i] = Str(s)
	}
	return col
}

// IsNull reports whether v is NULL
func (v Value) IsNull() bool {
	return !v.Valid
}

// Display renders the value for reports; NULL becomes "NULL"
func (v Value) Display() string {
	if !v.Valid {
		return "NULL"
	}
	return v.String
}
