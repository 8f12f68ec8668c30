package help

const ColdstartYAML = `# wsi-tile-labeler Quick Start

workflow:
  validate: "Check a QuPath GeoJSON export before importing"
  import: "Parse annotations, label a tile manifest, record the run"
  review: "Draw a seeded low-confidence sample for manual QA"

commands:
  validate: |
    wtl validate --annotations export.geojson

  basic_import: |
    wtl import --annotations export.geojson --tiles tiles.csv --species mouse

  scaled_import: |
    wtl import --annotations export.geojson --tiles tiles.csv --species rat --scale 0.25

  import_with_review: |
    wtl import --annotations export.geojson --tiles tiles.csv --species nmr --review-sample 100

  review_sample: |
    wtl review --tiles wtl-results/runs/2026-01-15-abc123ef/labeled-tiles.csv --out review.csv

  list_runs: |
    wtl runs list

  run_details: |
    wtl runs show 5

  get_run_content: |
    wtl runs get --file=summary 5

  query_runs: |
    wtl runs query --today
    wtl runs query --warnings
    wtl runs query --species=mouse

  species_registry: |
    wtl species list
    wtl species info nmr
    wtl species labelmap mouse
    wtl species compare mouse rat

  multi_stage: |
    # Step 1: Validate the QuPath export
    wtl validate --annotations export.geojson

    # Step 2: Import and label tiles
    wtl import --annotations export.geojson --tiles tiles.csv --species mouse

    # Step 3: List runs and get latest ID
    wtl runs list

    # Step 4: Pull the label distribution for QA
    wtl runs show <run_id>

    # Step 5: Export uncertain tiles for manual review
    wtl review --tiles wtl-results/runs/<run>/labeled-tiles.csv --out review.csv

key_files:
  - "wtl-results/index.yaml (all runs)"
  - "wtl-results/runs/2026-01-15-{uuid}/labeled-tiles.csv (tile manifest with labels)"
  - "wtl-results/runs/2026-01-15-{uuid}/annotations.csv (parsed annotation table)"
  - "wtl-results/runs/2026-01-15-{uuid}/review-sample.csv (low-confidence tiles)"
  - "wtl-results/runs/2026-01-15-{uuid}/import-summary.yaml (full run metadata)"
  - "wsi-tile-labeler.db (run ledger, next to the binary)"

run_system:
  - "Runs tracked in SQLite ledger"
  - "Auto-incrementing run IDs (1, 2, 3...)"
  - "Run directories: runs/2026-01-15-{uuid} (date + uuid prefix)"
  - "Use 'wtl runs list' to list all runs"
  - "Use 'wtl runs show <id>' for details"
  - "Use 'wtl runs get --file=summary <id>' to see YAML content"

runs_commands:
  list: "List recent runs with stats"
  show_id: "Show label distribution and warnings for a run"
  get_id: "Cat run artifact files (--file=summary|tiles|annotations|review)"
  query: "Filter runs (--today, --warnings, --species=code)"
  init: "Initialize ledger schema"

labeling_invariants:
  - "A tile gets the label of the annotation covering the greatest share of it"
  - "Overlap below the threshold (default 0.5) means background with confidence 0"
  - "label_confidence is the winning overlap ratio, 0.0 to 1.0"
  - "Labels are validated against the species' follicle types; mismatches warn, never fail"
  - "Same seed = same review sample"

query_examples:
  list_all_runs: 'wtl runs list'
  show_run_5: 'wtl runs show 5'
  get_summary_yaml: 'wtl runs get --file=summary 5'
  get_labeled_tiles: 'wtl runs get --file=tiles 5'
  query_today: 'wtl runs query --today'
  query_warnings: 'wtl runs query --warnings'
  query_species: 'wtl runs query --species=mouse'
  filter_low_confidence: 'wtl runs get --file=review 5 | awk -F, ''$4 < 0.6'''

error_behavior:
  - "Missing or malformed GeoJSON: fail fast before labeling"
  - "Per-annotation geometry errors: logged and skipped, never fatal"
  - "Invalid labels for a species: recorded as warnings in the summary"
  - "Ledger write failures: warn only, results stay on disk"
  - "Exit codes: 0=success, 1=usage error, 2=operational failure"
`
