package store

// Schema DDL. Statements are idempotent so Open can run them on every start.
const (
	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    instance TEXT NOT NULL,
    algorithm TEXT NOT NULL,
    item_count INTEGER NOT NULL,
    capacity INTEGER NOT NULL,
    value REAL NOT NULL,
    weight INTEGER NOT NULL,
    optimal INTEGER NOT NULL,
    taken BLOB NOT NULL,
    expanded INTEGER NOT NULL,
    pruned INTEGER NOT NULL,
    queue_peak INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL,
    error TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createRunsInstanceIndex = `CREATE INDEX IF NOT EXISTS idx_runs_instance ON runs (instance, created_at);`
)

// schemaStatements is executed in order by Open.
var schemaStatements = []string{
	createRuns,
	createRunsInstanceIndex,
}
