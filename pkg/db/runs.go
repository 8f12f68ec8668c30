package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Run statuses recorded in the ledger.
const (
	StatusSuccess  = "success"
	StatusWarnings = "warnings"
)

// Run represents one completed import recorded in the runs table
type Run struct {
	RunID            int64
	RunUUID          string
	CreatedAt        time.Time
	Species          string
	AnnotationsPath  string
	TilesPath        string
	AnnotationCount  int
	TileCount        int
	LabeledCount     int
	BackgroundCount  int
	WarningCount     int
	OverlapThreshold float64
	CoordinateScale  float64
	Status           string
	RunDir           string
}

// RunLabel is one row of a run's label distribution
type RunLabel struct {
	RunID     int64
	Label     string
	TileCount int
	Pct       float64
}

// RunWarning is a non-fatal finding recorded against a run
type RunWarning struct {
	WarningID int64
	RunID     int64
	Kind      string
	Message   string
	CreatedAt time.Time
}

// RunFile is an artifact pointer joined with its type name
type RunFile struct {
	FileID      int64
	RunID       int64
	TypeName    string
	ContentHash string
	FilePath    string
	SizeBytes   int64
	CreatedAt   time.Time
}

// InsertRun records a completed import and returns its run ID
func (db *DB) InsertRun(run *Run) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (
			run_uuid, species, annotations_path, tiles_path,
			annotation_count, tile_count, labeled_count, background_count,
			warning_count, overlap_threshold, coordinate_scale, status, run_dir
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunUUID, run.Species, run.AnnotationsPath, run.TilesPath,
		run.AnnotationCount, run.TileCount, run.LabeledCount, run.BackgroundCount,
		run.WarningCount, run.OverlapThreshold, run.CoordinateScale, run.Status, run.RunDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	run.RunID = runID
	return runID, nil
}

// InsertRunLabel records one label's share of a run's tiles
func (db *DB) InsertRunLabel(runID int64, label string, tileCount int, pct float64) error {
	_, err := db.Exec(`
		INSERT INTO run_labels (run_id, label, tile_count, pct)
		VALUES (?, ?, ?, ?)
	`, runID, label, tileCount, pct)
	if err != nil {
		return fmt.Errorf("failed to insert run label: %w", err)
	}
	return nil
}

// InsertRunWarning records a non-fatal finding against a run
func (db *DB) InsertRunWarning(runID int64, kind, message string) error {
	_, err := db.Exec(`
		INSERT INTO run_warnings (run_id, kind, message)
		VALUES (?, ?, ?)
	`, runID, kind, message)
	if err != nil {
		return fmt.Errorf("failed to insert run warning: %w", err)
	}
	return nil
}

// GetRunByID retrieves a single run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run := &Run{}
	err := db.QueryRow(`
		SELECT run_id, run_uuid, created_at, species, annotations_path, tiles_path,
			annotation_count, tile_count, labeled_count, background_count,
			warning_count, overlap_threshold, coordinate_scale, status, run_dir
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.RunUUID,
		&run.CreatedAt,
		&run.Species,
		&run.AnnotationsPath,
		&run.TilesPath,
		&run.AnnotationCount,
		&run.TileCount,
		&run.LabeledCount,
		&run.BackgroundCount,
		&run.WarningCount,
		&run.OverlapThreshold,
		&run.CoordinateScale,
		&run.Status,
		&run.RunDir,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// GetRunLabels returns a run's label distribution, biggest share first
func (db *DB) GetRunLabels(runID int64) ([]RunLabel, error) {
	rows, err := db.Query(`
		SELECT run_id, label, tile_count, pct
		FROM run_labels
		WHERE run_id = ?
		ORDER BY tile_count DESC, label ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run labels: %w", err)
	}
	defer rows.Close()

	var labels []RunLabel
	for rows.Next() {
		var label RunLabel
		if err := rows.Scan(&label.RunID, &label.Label, &label.TileCount, &label.Pct); err != nil {
			return nil, fmt.Errorf("failed to scan run label: %w", err)
		}
		labels = append(labels, label)
	}

	return labels, rows.Err()
}

// GetRunWarnings returns a run's warnings in insertion order
func (db *DB) GetRunWarnings(runID int64) ([]RunWarning, error) {
	rows, err := db.Query(`
		SELECT warning_id, run_id, kind, message, created_at
		FROM run_warnings
		WHERE run_id = ?
		ORDER BY warning_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run warnings: %w", err)
	}
	defer rows.Close()

	var warnings []RunWarning
	for rows.Next() {
		var warning RunWarning
		if err := rows.Scan(&warning.WarningID, &warning.RunID, &warning.Kind, &warning.Message, &warning.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run warning: %w", err)
		}
		warnings = append(warnings, warning)
	}

	return warnings, rows.Err()
}

// ListRunFiles returns a run's artifact pointers with their type names
func (db *DB) ListRunFiles(runID int64) ([]RunFile, error) {
	rows, err := db.Query(`
		SELECT f.file_id, f.run_id, t.type_name, f.content_hash, f.file_path,
			COALESCE(f.size_bytes, 0), f.created_at
		FROM run_files f
		JOIN artifact_types t ON f.type_id = t.type_id
		WHERE f.run_id = ?
		ORDER BY f.file_id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run files: %w", err)
	}
	defer rows.Close()

	var files []RunFile
	for rows.Next() {
		var file RunFile
		if err := rows.Scan(&file.FileID, &file.RunID, &file.TypeName, &file.ContentHash, &file.FilePath, &file.SizeBytes, &file.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// GetRunFileByType returns the artifact pointer of the given type for a run
func (db *DB) GetRunFileByType(runID int64, typeName string) (*RunFile, error) {
	file := &RunFile{}
	err := db.QueryRow(`
		SELECT f.file_id, f.run_id, t.type_name, f.content_hash, f.file_path,
			COALESCE(f.size_bytes, 0), f.created_at
		FROM run_files f
		JOIN artifact_types t ON f.type_id = t.type_id
		WHERE f.run_id = ? AND t.type_name = ?
	`, runID, typeName).Scan(&file.FileID, &file.RunID, &file.TypeName, &file.ContentHash, &file.FilePath, &file.SizeBytes, &file.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d has no %s file", runID, typeName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run file: %w", err)
	}

	return file, nil
}

// ListRuns returns the most recent runs, newest first.
// limit <= 0 means no limit.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, run_uuid, created_at, species, annotations_path, tiles_path,
			annotation_count, tile_count, labeled_count, background_count,
			warning_count, overlap_threshold, coordinate_scale, status, run_dir
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// GetLatestRunID returns the ID of the most recent run
func (db *DB) GetLatestRunID() (int64, error) {
	var runID int64
	err := db.QueryRow("SELECT run_id FROM runs ORDER BY run_id DESC LIMIT 1").Scan(&runID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs found")
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get latest run: %w", err)
	}
	return runID, nil
}

// QueryRuns retrieves runs matching the given filters, newest first
func (db *DB) QueryRuns(todayOnly bool, warningsOnly bool, species string) ([]Run, error) {
	query := `
		SELECT run_id, run_uuid, created_at, species, annotations_path, tiles_path,
			annotation_count, tile_count, labeled_count, background_count,
			warning_count, overlap_threshold, coordinate_scale, status, run_dir
		FROM runs
	`

	var conditions []string
	var args []interface{}

	if todayOnly {
		conditions = append(conditions, "DATE(created_at) = DATE('now')")
	}

	if warningsOnly {
		conditions = append(conditions, "warning_count > 0")
	}

	if species != "" {
		conditions = append(conditions, "species = ?")
		args = append(args, species)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, run_id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns collects full run rows from a result set
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.RunID,
			&run.RunUUID,
			&run.CreatedAt,
			&run.Species,
			&run.AnnotationsPath,
			&run.TilesPath,
			&run.AnnotationCount,
			&run.TileCount,
			&run.LabeledCount,
			&run.BackgroundCount,
			&run.WarningCount,
			&run.OverlapThreshold,
			&run.CoordinateScale,
			&run.Status,
			&run.RunDir,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
