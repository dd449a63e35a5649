package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps documents in a local SQLite file. This is the
// single-machine variant; it exposes the same contract as GormStore.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures
// the documents table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		doc_id     TEXT NOT NULL,
		data       TEXT NOT NULL,
		PRIMARY KEY (collection, doc_id)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := encodeDoc(collection, doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, doc_id) DO UPDATE SET data = excluded.data`,
		collection, id, string(raw))
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var data string
	err := s.db.GetContext(ctx, &data,
		"SELECT data FROM documents WHERE collection = ? AND doc_id = ?",
		collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return []byte(data), nil
}

func (s *SQLiteStore) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	var rows []string
	err := s.db.SelectContext(ctx, &rows,
		"SELECT data FROM documents WHERE collection = ?", collection)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	all := make([][]byte, 0, len(rows))
	for _, data := range rows {
		all = append(all, []byte(data))
	}
	return all, nil
}

func (s *SQLiteStore) GetWhere(ctx context.Context, collection string, filter map[string]string) ([][]byte, error) {
	all, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return filterDocs(all, filter)
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	raw, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	merged, err := mergePatch(raw, patch)
	if err != nil {
		return err
	}
	if err := validateTimestamps(collection, merged); err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE documents SET data = ? WHERE collection = ? AND doc_id = ?",
		string(merged), collection, id)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND doc_id = ?",
		collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
