// Package iostore persists repo registrations and settings in a local
// SQLite database. This is an impure I/O package that implements
// contracts defined in pkg/.
package iostore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/rbhughes/purr-petra/pkg/petra"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS repos (
	id TEXT PRIMARY KEY,
	active INTEGER NOT NULL DEFAULT 1,
	name TEXT NOT NULL,
	fs_path TEXT NOT NULL,
	conn TEXT NOT NULL,
	suite TEXT NOT NULL,
	well_count INTEGER NOT NULL DEFAULT 0,
	asset_counts TEXT NOT NULL DEFAULT '{}',
	files INTEGER NOT NULL DEFAULT 0,
	directories INTEGER NOT NULL DEFAULT 0,
	bytes INTEGER NOT NULL DEFAULT 0,
	repo_mod TIMESTAMP
);
CREATE TABLE IF NOT EXISTS settings (
	file_depot TEXT
);
`

// sqliteStore implements petra.RepoStore over a single SQLite file.
type sqliteStore struct {
	db *sql.DB
}

// New opens (or creates) the registry database at path.
func New(path string) (petra.RepoStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	// modernc sqlite rejects concurrent writers; a single connection
	// serializes access the same way the CLI uses it.
	db.SetMaxOpenConns(1)
	return &sqliteStore{db: db}, nil
}

// Init creates tables and seeds the file depot with the system temp
// directory when unset.
func (s *sqliteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return &StoreError{Op: "init", Err: err}
	}

	var depot sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT file_depot FROM settings LIMIT 1").Scan(&depot)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO settings (file_depot) VALUES (?)", os.TempDir())
		if err != nil {
			return &StoreError{Op: "init", Err: err}
		}
		return nil
	}
	if err != nil {
		return &StoreError{Op: "init", Err: err}
	}
	return nil
}

func (s *sqliteStore) UpsertRepo(ctx context.Context, repo *petra.Repo) error {
	conn, err := json.Marshal(repo.Conn)
	if err != nil {
		return &StoreError{Op: "upsert", Err: err}
	}
	counts, err := json.Marshal(repo.AssetCounts)
	if err != nil {
		return &StoreError{Op: "upsert", Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO repos
	(id, active, name, fs_path, conn, suite, well_count, asset_counts,
	 files, directories, bytes, repo_mod)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	active = excluded.active,
	name = excluded.name,
	fs_path = excluded.fs_path,
	conn = excluded.conn,
	suite = excluded.suite,
	well_count = excluded.well_count,
	asset_counts = excluded.asset_counts,
	files = excluded.files,
	directories = excluded.directories,
	bytes = excluded.bytes,
	repo_mod = excluded.repo_mod`,
		repo.ID, repo.Active, repo.Name, repo.FSPath, string(conn),
		repo.Suite, repo.WellCount, string(counts),
		repo.Files, repo.Directories, repo.Bytes,
		repo.RepoMod.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return &StoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (s *sqliteStore) GetRepo(ctx context.Context, id string) (*petra.Repo, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, active, name, fs_path, conn, suite, well_count, asset_counts,
	files, directories, bytes, repo_mod
FROM repos WHERE id = ?`, id)

	repo, err := scanRepo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &RepoNotFoundError{ID: id}
	}
	if err != nil {
		return nil, &StoreError{Op: "get", Err: err}
	}
	return repo, nil
}

func (s *sqliteStore) ListRepos(ctx context.Context) ([]*petra.Repo, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, active, name, fs_path, conn, suite, well_count, asset_counts,
	files, directories, bytes, repo_mod
FROM repos ORDER BY name`)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var repos []*petra.Repo
	for rows.Next() {
		repo, err := scanRepo(rows)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		repos = append(repos, repo)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return repos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRepo(row scanner) (*petra.Repo, error) {
	var repo petra.Repo
	var conn, counts, mod string
	err := row.Scan(&repo.ID, &repo.Active, &repo.Name, &repo.FSPath,
		&conn, &repo.Suite, &repo.WellCount, &counts,
		&repo.Files, &repo.Directories, &repo.Bytes, &mod)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(conn), &repo.Conn); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(counts), &repo.AssetCounts); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, mod); err == nil {
		repo.RepoMod = t
	}
	return &repo, nil
}

func (s *sqliteStore) FileDepot(ctx context.Context) (string, error) {
	var depot sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT file_depot FROM settings LIMIT 1").Scan(&depot)
	if err != nil {
		return "", &StoreError{Op: "file_depot", Err: err}
	}
	return depot.String, nil
}

func (s *sqliteStore) SetFileDepot(ctx context.Context, dir string) error {
	// not an upsert since there is no independent id key
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM settings").Scan(&n)
	if err != nil {
		return &StoreError{Op: "set_file_depot", Err: err}
	}
	if n == 0 {
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO settings (file_depot) VALUES (?)", dir)
	} else {
		_, err = s.db.ExecContext(ctx,
			"UPDATE settings SET file_depot = ?", dir)
	}
	if err != nil {
		return &StoreError{Op: "set_file_depot", Err: err}
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
