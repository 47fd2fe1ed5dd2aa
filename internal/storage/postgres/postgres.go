// Package postgres loads relations from tables of a live PostgreSQL database.
package postgres

import (
	"context"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leengari/relprofile/internal/domain/relation"
)

// Loader reads whole tables through a pgxpool connection pool
type Loader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect creates a pool for dsn and pings it
func Connect(ctx context.Context, dsn string, logger *slog.Logger) (*Loader, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MaxConnIdleTime = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Loader{pool: pool, logger: logger}, nil
}

// Close closes the connection pool
func (l *Loader) Close() {
	l.pool.Close()
}

// LoadTables loads each named table in order
func (l *Loader) LoadTables(ctx context.Context, tables []string) ([]*relation.Relation, error) {
	relations := make([]*relation.Relation, 0, len(tables))
	for _, table := range tables {
		rel, err := l.LoadTable(ctx, table)
		if err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	return relations, nil
}

// LoadTable reads every row of table. A "schema.table" name is split and quoted part by part.
func (l *Loader) LoadTable(ctx context.Context, table string) (*relation.Relation, error) {
	query := fmt.Sprintf("SELECT * FROM %s", qualifiedTableName(table))

	rows, err := l.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	attributes := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		attributes[i] = fd.Name
	}

	var records [][]relation.Value
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		record := make([]relation.Value, len(values))
		for i, v := range values {
			record[i] = toValue(v)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	rel, err := relation.FromRecords(table, attributes, records)
	if err != nil {
		return nil, err
	}

	l.logger.Info("table loaded",
		slog.String("table", rel.Name),
		slog.String("source", "postgres"),
		slog.Int("rows", rel.RecordCount()),
		slog.Int("columns", rel.ColumnCount()),
	)
	return rel, nil
}

func qualifiedTableName(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// toValue renders a decoded column value as text. SQL NULL becomes NULL.
func toValue(raw any) relation.Value {
	switch v := raw.(type) {
	case nil:
		return relation.Null()
	case string:
		return relation.Str(v)
	case []byte:
		return relation.Str(string(v))
	case time.Time:
		return relation.Str(v.UTC().Format(time.RFC3339Nano))
	case [16]byte:
		return relation.Str(uuid.UUID(v).String())
	case driver.Valuer:
		inner, err := v.Value()
		if err != nil {
			return relation.Str(fmt.Sprint(v))
		}
		if inner == nil {
			return relation.Null()
		}
		if _, again := inner.(driver.Valuer); again {
			return relation.Str(fmt.Sprint(inner))
		}
		return toValue(inner)
	default:
		return relation.Str(fmt.Sprint(v))
	}
}
