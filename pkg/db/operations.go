package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetArtifactTypeID returns the type_id for a given type_name.
func (db *DB) GetArtifactTypeID(typeName string) (int64, error) {
	var typeID int64
	err := db.QueryRow("SELECT type_id FROM artifact_types WHERE type_name = ?", typeName).Scan(&typeID)
	if err != nil {
		return 0, fmt.Errorf("failed to get artifact type ID for %s: %w", typeName, err)
	}
	return typeID, nil
}

// InsertRunFile inserts or updates an artifact pointer, returning the file_id.
func (db *DB) InsertRunFile(runID int64, typeID int64, contentHash, filePath string, sizeBytes int64) (int64, error) {
	// Check if a file of this type was already recorded for the run
	var existingID int64
	err := db.QueryRow("SELECT file_id FROM run_files WHERE run_id = ? AND type_id = ?", runID, typeID).Scan(&existingID)
	if err == nil {
		// Update existing pointer
		_, err = db.Exec(`
			UPDATE run_files
			SET content_hash = ?, file_path = ?, size_bytes = ?
			WHERE file_id = ?
		`, contentHash, filePath, sizeBytes, existingID)
		if err != nil {
			return 0, fmt.Errorf("failed to update run file: %w", err)
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing run file: %w", err)
	}

	// Insert new pointer
	result, err := db.Exec(`
		INSERT INTO run_files (run_id, type_id, content_hash, file_path, size_bytes)
		VALUES (?, ?, ?, ?, ?)
	`, runID, typeID, contentHash, filePath, sizeBytes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run file: %w", err)
	}

	fileID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run file ID: %w", err)
	}

	return fileID, nil
}
