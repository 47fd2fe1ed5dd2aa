package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leengari/relprofile/internal/domain/relation"
)

// CSVOptions controls how CSV cells map to values
type CSVOptions struct {
	// NullToken is the cell text read as NULL. The default "" makes empty cells NULL.
	NullToken string
	// Headerless files get attribute names c0, c1, ...
	Headerless bool
}

// LoadCSV reads one CSV file as a relation named after the file
func LoadCSV(path string, opts CSVOptions, logger *slog.Logger) (*relation.Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rel, err := ReadCSV(name, f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load csv %s: %w", path, err)
	}

	logger.Info("csv loaded",
		slog.String("table", rel.Name),
		slog.Int("rows", rel.RecordCount()),
		slog.Int("columns", rel.ColumnCount()),
	)
	return rel, nil
}

// ReadCSV parses CSV from r. Every record must have as many fields as the first one.
func ReadCSV(name string, r io.Reader, opts CSVOptions) (*relation.Relation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	var attributes []string
	if !opts.Headerless {
		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		if err != nil {
			return nil, err
		}
		attributes = header
	}

	var records [][]relation.Value
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if attributes == nil {
			attributes = make([]string, len(fields))
			for i := range attributes {
				attributes[i] = fmt.Sprintf("c%d", i)
			}
		}

		record := make([]relation.Value, len(fields))
		for i, field := range fields {
			if field == opts.NullToken {
				record[i] = relation.Null()
			} else {
				record[i] = relation.Str(field)
			}
		}
		records = append(records, record)
	}

	if attributes == nil {
		attributes = []string{}
	}
	return relation.FromRecords(name, attributes, records)
}
