package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leengari/relprofile/internal/domain/relation"
)

// LoadTable reads a table directory (meta.json + optional data.json) into a relation.
// Attribute order follows meta.json; a key missing from a row is NULL.
func LoadTable(path string, logger *slog.Logger) (*relation.Relation, error) {
	metaPath := filepath.Join(path, "meta.json")
	dataPath := filepath.Join(path, "data.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read table meta: %w", err)
	}

	var meta TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse table meta %s: %w", metaPath, err)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(path)
	}

	attributes := make([]string, len(meta.Columns))
	for i, c := range meta.Columns {
		attributes[i] = c.Name
	}

	// A table without data.json has no records; any other read failure is an error
	rows := []Row{}
	dataBytes, err := os.ReadFile(dataPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read table data: %w", err)
	default:
		// UseNumber keeps numbers as written, so 1.50 and 1.5 stay distinct
		dec := json.NewDecoder(bytes.NewReader(dataBytes))
		dec.UseNumber()
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to parse table data %s: %w", dataPath, err)
		}
	}

	columns := make([][]relation.Value, len(attributes))
	for c, name := range attributes {
		col := make([]relation.Value, len(rows))
		for rowPos, row := range rows {
			v, err := toValue(row[name])
			if err != nil {
				return nil, fmt.Errorf("table %s row %d column %s: %w", meta.Name, rowPos, name, err)
			}
			col[rowPos] = v
		}
		columns[c] = col
	}

	rel, err := relation.New(meta.Name, attributes, columns)
	if err != nil {
		return nil, err
	}

	logger.Info("table loaded",
		slog.String("table", rel.Name),
		slog.Int("rows", rel.RecordCount()),
		slog.Int("columns", rel.ColumnCount()),
	)

	return rel, nil
}

// toValue renders a decoded JSON value as a profiling value.
// JSON null and absent keys are NULL; nested values are compared by their JSON text.
func toValue(raw interface{}) (relation.Value, error) {
	switch v := raw.(type) {
	case nil:
		return relation.Null(), nil
	case string:
		return relation.Str(v), nil
	case json.Number:
		return relation.Str(v.String()), nil
	case float64:
		return relation.Str(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case bool:
		return relation.Str(strconv.FormatBool(v)), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return relation.Value{}, err
		}
		return relation.Str(string(b)), nil
	}
}
