// Package export writes tasks to a SQLite database so they can be queried
// with ordinary SQL tools.
package export

import (
	"cmp"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"slices"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/todolor/internal/task"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial tasks table
const currentSchemaVersion = 1

// ErrMismatch is returned by Verify when the table does not match the tasks
// that were written.
var ErrMismatch = errors.New("exported tasks do not match")

// DB is an export target database.
type DB struct {
	db *sql.DB
}

// Open opens the export database at path, creating the file if needed.
// The tasks table is created on first use and the file's user_version is
// checked against the schema this build writes.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open export database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("export database %s is not usable: %w", path, err)
	}

	// An export is one short transaction; a single connection keeps the
	// pragmas below in effect for it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure export database: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare tasks table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// WriteTasks replaces the contents of the tasks table with tasks,
// in a single transaction.
func (d *DB) WriteTasks(ctx context.Context, tasks []task.Task) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, title, description, deadline, completed)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.ExecContext(ctx,
			t.ID,
			t.Title,
			nullString(t.Description),
			nullInt64(t.Deadline),
			nullInt64(t.Completed),
		); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ReadTasks returns exported tasks ordered by id.
func (d *DB) ReadTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, description, deadline, completed
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var (
			t         task.Task
			desc      sql.NullString
			deadline  sql.NullInt64
			completed sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.Title, &desc, &deadline, &completed); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.Description = desc.String
		if deadline.Valid {
			t.Deadline = &deadline.Int64
		}
		if completed.Valid {
			t.Completed = &completed.Int64
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Verify reads the tasks table back and checks it holds exactly want,
// ordered by id.
func (d *DB) Verify(ctx context.Context, want []task.Task) error {
	got, err := d.ReadTasks(ctx)
	if err != nil {
		return err
	}

	sorted := slices.Clone(want)
	slices.SortFunc(sorted, func(a, b task.Task) int { return cmp.Compare(a.ID, b.ID) })

	if len(got) != len(sorted) {
		return fmt.Errorf("%w: %d rows, want %d", ErrMismatch, len(got), len(sorted))
	}
	for i := range got {
		if !sameTask(got[i], sorted[i]) {
			return fmt.Errorf("%w: row for task %d differs", ErrMismatch, sorted[i].ID)
		}
	}
	return nil
}

func sameTask(a, b task.Task) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		sameMillis(a.Deadline, b.Deadline) &&
		sameMillis(a.Completed, b.Completed)
}

func sameMillis(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CountTasks returns the number of exported tasks.
func (d *DB) CountTasks(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// applyPragmas tunes SQLite for a one-shot bulk write.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the tasks table and stamps the schema version.
// Databases written by a newer todolor are refused.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("export schema version %d is newer than supported %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
