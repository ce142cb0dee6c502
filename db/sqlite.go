package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"orca-dataset/utils"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// SQLiteClient records pipeline run manifests: one row per prepare run and
// one row per generated split artifact. The manifest is bookkeeping only; the
// feature artifacts themselves stay on the filesystem.
type SQLiteClient struct {
	db *sql.DB
}

func NewSQLiteClient(dataSourceName string) (*SQLiteClient, error) {
	// Extract the file path before query parameters
	dbPath := dataSourceName
	if idx := strings.Index(dataSourceName, "?"); idx != -1 {
		dbPath = dataSourceName[:idx]
	}

	// Create the directory if it doesn't exist (cross-platform)
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." && dbDir != "" {
		if err := utils.CreateFolder(dbDir); err != nil {
			return nil, fmt.Errorf("error creating database directory: %s", err)
		}
	}

	// Add busy timeout param to DSN (milliseconds)
	if !strings.Contains(dataSourceName, "_busy_timeout") {
		if strings.Contains(dataSourceName, "?") {
			dataSourceName += "&_busy_timeout=5000" // 5 seconds
		} else {
			dataSourceName += "?_busy_timeout=5000"
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to SQLite: %s", err)
	}

	err = createTables(db)
	if err != nil {
		return nil, fmt.Errorf("error creating tables: %s", err)
	}

	return &SQLiteClient{db: db}, nil
}

// createTables creates the required tables if they don't exist
func createTables(db *sql.DB) error {
	createRunsTable := `
    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        data_dir TEXT NOT NULL,
        seed INTEGER NOT NULL
    );
    `

	createSplitStatsTable := `
    CREATE TABLE IF NOT EXISTS split_stats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id INTEGER NOT NULL,
        split TEXT NOT NULL,
        label_count INTEGER NOT NULL,
        file_count INTEGER NOT NULL,
        segment_count INTEGER NOT NULL,
        artifact TEXT NOT NULL,
        FOREIGN KEY (run_id) REFERENCES runs(id)
    );
    CREATE INDEX IF NOT EXISTS idx_split_stats_run ON split_stats(run_id);
    `

	_, err := db.Exec(createRunsTable)
	if err != nil {
		return fmt.Errorf("error creating runs table: %s", err)
	}

	_, err = db.Exec(createSplitStatsTable)
	if err != nil {
		return fmt.Errorf("error creating split_stats table: %s", err)
	}

	return nil
}

func (db *SQLiteClient) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// RecordRun inserts a manifest row for a prepare run and returns its id.
func (db *SQLiteClient) RecordRun(dataDir string, seed int64) (int64, error) {
	result, err := db.db.Exec(
		"INSERT INTO runs (started_at, data_dir, seed) VALUES (?, ?, ?)",
		time.Now().UTC(), dataDir, seed)
	if err != nil {
		return 0, fmt.Errorf("error recording run: %s", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading run id: %s", err)
	}
	return runID, nil
}

// RecordSplitStats inserts the per-split summary for a run.
func (db *SQLiteClient) RecordSplitStats(runID int64, split string, labelCount, fileCount, segmentCount int, artifact string) error {
	_, err := db.db.Exec(
		"INSERT INTO split_stats (run_id, split, label_count, file_count, segment_count, artifact) VALUES (?, ?, ?, ?, ?, ?)",
		runID, split, labelCount, fileCount, segmentCount, artifact)
	if err != nil {
		return fmt.Errorf("error recording split stats: %s", err)
	}
	return nil
}

// RunCount returns the number of recorded prepare runs.
func (db *SQLiteClient) RunCount() (int, error) {
	var count int
	err := db.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting runs: %s", err)
	}
	return count, nil
}
