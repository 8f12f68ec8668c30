package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;
PRAGMA mmap_size = 30000000000;

-- Runs: one row per completed import
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    species TEXT NOT NULL,
    annotations_path TEXT NOT NULL,
    tiles_path TEXT NOT NULL,
    annotation_count INTEGER NOT NULL,
    tile_count INTEGER NOT NULL,
    labeled_count INTEGER DEFAULT 0,
    background_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0,
    overlap_threshold REAL NOT NULL,
    coordinate_scale REAL NOT NULL,
    status TEXT NOT NULL,
    run_dir TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_species ON runs(species);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Run labels: final label distribution of a run
CREATE TABLE IF NOT EXISTS run_labels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    label TEXT NOT NULL,
    tile_count INTEGER NOT NULL,
    pct REAL NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, label)
);

CREATE INDEX IF NOT EXISTS idx_run_labels_run ON run_labels(run_id);

-- Run warnings: validation findings that did not stop the import
CREATE TABLE IF NOT EXISTS run_warnings (
    warning_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_warnings_run ON run_warnings(run_id);
CREATE INDEX IF NOT EXISTS idx_run_warnings_kind ON run_warnings(kind);

-- Artifact types: lookup table for normalization
CREATE TABLE IF NOT EXISTS artifact_types (
    type_id INTEGER PRIMARY KEY AUTOINCREMENT,
    type_name TEXT NOT NULL UNIQUE,
    description TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Run files: artifact pointers (DB stores metadata, disk stores content)
CREATE TABLE IF NOT EXISTS run_files (
    file_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    type_id INTEGER NOT NULL,
    content_hash TEXT NOT NULL,
    file_path TEXT NOT NULL,
    size_bytes INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    FOREIGN KEY (type_id) REFERENCES artifact_types(type_id),
    UNIQUE(run_id, type_id)
);

CREATE INDEX IF NOT EXISTS idx_run_files_run ON run_files(run_id);
CREATE INDEX IF NOT EXISTS idx_run_files_type ON run_files(type_id);
CREATE INDEX IF NOT EXISTS idx_run_files_hash ON run_files(content_hash);

-- Seed artifact types
INSERT OR IGNORE INTO artifact_types (type_name, description) VALUES
    ('labeled_tiles', 'Tile manifest with assigned labels'),
    ('annotations', 'Parsed annotation table'),
    ('review_sample', 'Low-confidence tiles drawn for manual review'),
    ('import_summary', 'YAML summary of the import run');
`
