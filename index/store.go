package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/dhamidi/symdoc/model"
)

var log = commonlog.GetLogger("symdoc.index")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	module TEXT NOT NULL,
	source_set TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS declarations (
	dri TEXT NOT NULL,
	source_set TEXT NOT NULL,
	parent TEXT NOT NULL,
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	name TEXT NOT NULL,
	package TEXT NOT NULL,
	visibility TEXT NOT NULL,
	inherited_from TEXT NOT NULL,
	obvious INTEGER NOT NULL,
	source TEXT NOT NULL,
	PRIMARY KEY (dri, source_set, parent)
);

CREATE INDEX IF NOT EXISTS idx_declarations_name ON declarations(name COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_declarations_package ON declarations(package);
`

// Store persists declaration entries in a SQLite database.
type Store struct {
	conn *sql.DB
}

// Open opens or creates the database at path. The special path ":memory:"
// keeps everything in memory.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	// A memory database exists per connection.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Put replaces every entry of the module's source sets with the module's
// declarations and returns how many were written.
func (s *Store) Put(ctx context.Context, m *model.Module) (int, error) {
	entries := Flatten(m)
	runID := ""
	if run, ok := model.Get[model.TranslationRun](m.Extras); ok {
		runID = run.ID
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, ss := range m.SourceSets {
		if _, err := tx.ExecContext(ctx, `DELETE FROM declarations WHERE source_set = ?`, ss.ID); err != nil {
			return 0, fmt.Errorf("failed to clear source set %s: %w", ss.ID, err)
		}
		if runID != "" {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO runs (id, module, source_set, created_at) VALUES (?, ?, ?, ?)`,
				runID, m.Name, ss.ID, now); err != nil {
				return 0, fmt.Errorf("failed to record run: %w", err)
			}
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO declarations
			(dri, source_set, parent, run_id, kind, name, package, visibility, inherited_from, obvious, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.DRI, e.SourceSet, e.Parent, runID, e.Kind, e.Name,
			e.Package, e.Visibility, e.InheritedFrom, e.Obvious, e.Source)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s: %w", e.DRI, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	log.Infof("indexed %d declarations of %s (run %s)", written, m.Name, runID)
	return written, nil
}

const columns = `dri, source_set, parent, kind, name, package, visibility, inherited_from, obvious, source`

// Lookup returns every entry with the given DRI, one per enclosing
// declaration and source set.
func (s *Store) Lookup(ctx context.Context, dri string) ([]Entry, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+columns+` FROM declarations WHERE dri = ? ORDER BY source_set, parent`, dri)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", dri, err)
	}
	return scan(rows)
}

// Search matches names case-insensitively, exact matches first. Obvious
// members are left out.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT `+columns+` FROM declarations
		WHERE obvious = 0 AND name LIKE ? ESCAPE '\'
		ORDER BY (name = ? COLLATE NOCASE) DESC, length(name), name, kind
		LIMIT ?`, "%"+escapeLike(query)+"%", query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}
	return scan(rows)
}

// Packages lists the distinct packages in the index.
func (s *Store) Packages(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT DISTINCT package FROM declarations ORDER BY package`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scan(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.DRI, &e.SourceSet, &e.Parent, &e.Kind, &e.Name, &e.Package,
			&e.Visibility, &e.InheritedFrom, &e.Obvious, &e.Source); err != nil {
			return nil, fmt.Errorf("failed to scan declaration: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
