package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// LoadDatabase loads every table directory under dbPath.
// Relations are returned in directory order, which os.ReadDir sorts by name.
func LoadDatabase(dbPath string, logger *slog.Logger) (*Database, error) {
	metaPath := filepath.Join(dbPath, "meta.json")

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read database meta: %w", err)
	}

	var meta DatabaseMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse database meta: %w", err)
	}

	db := &Database{
		Name: meta.Name,
		Path: dbPath,
	}

	// Read all entries in the database directory
	entries, err := os.ReadDir(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read database directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		tableName := entry.Name()
		tablePath := filepath.Join(dbPath, tableName)

		rel, err := LoadTable(tablePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", tableName, err)
		}

		db.Relations = append(db.Relations, rel)
	}

	logger.Info("database loaded",
		slog.String("name", db.Name),
		slog.String("path", dbPath),
		slog.Int("table_count", len(db.Relations)),
	)

	return db, nil
}
