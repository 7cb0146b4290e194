package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS field_values (
	doc_id     TEXT NOT NULL,
	field_name TEXT NOT NULL,
	value      TEXT NOT NULL,
	PRIMARY KEY (doc_id, field_name)
);`

// SQLiteStore keeps field values in a local SQLite database so a document's
// edits survive restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(documentID, fieldName string) (string, bool) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM field_values WHERE doc_id = ? AND field_name = ?`,
		documentID, fieldName,
	).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) Set(documentID, fieldName, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO field_values (doc_id, field_name, value) VALUES (?, ?, ?)
		 ON CONFLICT (doc_id, field_name) DO UPDATE SET value = excluded.value`,
		documentID, fieldName, value,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s/%s: %w", documentID, fieldName, err)
	}
	return nil
}

func (s *SQLiteStore) GetAll(documentID string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT field_name, value FROM field_values WHERE doc_id = ?`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load values for %s: %w", documentID, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Clear(documentID string) error {
	_, err := s.db.Exec(`DELETE FROM field_values WHERE doc_id = ?`, documentID)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
