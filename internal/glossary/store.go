package glossary

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/termtip/termtip/internal/db"
)

// Store persists the term vocabulary in SQLite for the server deployment
// mode, where the glossary can be re-imported while pages are being served.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Import replaces the stored vocabulary with the given dictionary. The
// replacement is atomic: readers see either the old vocabulary or the new
// one, never a mix. Source order is preserved via the position column.
func (s *Store) Import(dict *Dictionary, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM terms`); err != nil {
		return fmt.Errorf("clearing terms: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO terms (key, full_name, short_definition, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing term insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range dict.Terms() {
		if _, err := stmt.Exec(t.Key, t.FullName, t.ShortDefinition, i); err != nil {
			return fmt.Errorf("inserting term %q: %w", t.Key, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO glossary_imports (id, source, term_count) VALUES (?, ?, ?)`,
		uuid.NewString(), source, dict.Len(),
	); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	return tx.Commit()
}

// Dictionary loads the stored vocabulary in import order.
func (s *Store) Dictionary() (*Dictionary, error) {
	rows, err := s.db.Query(`SELECT key, full_name, short_definition FROM terms ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	defer rows.Close()

	var terms []Term
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.Key, &t.FullName, &t.ShortDefinition); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	return New(terms), nil
}

// Get returns a single stored term by key.
func (s *Store) Get(key string) (Term, error) {
	var t Term
	err := s.db.QueryRow(
		`SELECT key, full_name, short_definition FROM terms WHERE key = ?`, key,
	).Scan(&t.Key, &t.FullName, &t.ShortDefinition)
	if err == sql.ErrNoRows {
		return Term{}, fmt.Errorf("term %q not found", key)
	}
	if err != nil {
		return Term{}, fmt.Errorf("loading term %q: %w", key, err)
	}
	return t, nil
}

// Count returns the number of stored terms.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM terms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting terms: %w", err)
	}
	return n, nil
}
