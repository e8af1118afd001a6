// Package history persists past advisories in a local SQLite database.
// The classifier and generator stay pure - persistence is strictly an
// outer-layer concern.
package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bivenue/copilot/internal/model"
)

//go:embed schema.sql
var schema string

// Store handles database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store at the given database path
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores an advisory. A missing ID is assigned here so callers
// can persist advisories built without one.
func (s *Store) Save(advisory *model.Advisory) error {
	if advisory.ID == "" {
		advisory.ID = uuid.New().String()
	}
	if advisory.CreatedAt.IsZero() {
		advisory.CreatedAt = time.Now().UTC()
	}

	recJSON, err := json.Marshal(advisory.Recommendation)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	var briefMD, briefProvider string
	if advisory.LLM != nil {
		briefMD = advisory.LLM.BriefMD
		briefProvider = advisory.LLM.Provider
	}

	_, err = s.db.Exec(
		"INSERT INTO advisories (id, created_at, problem, domain, recommendation, brief_md, brief_provider) VALUES (?, ?, ?, ?, ?, ?, ?)",
		advisory.ID, advisory.CreatedAt, advisory.Problem, string(advisory.Domain), string(recJSON), briefMD, briefProvider,
	)
	if err != nil {
		return fmt.Errorf("insert advisory: %w", err)
	}

	return nil
}

// Get retrieves an advisory by ID
func (s *Store) Get(id string) (*model.Advisory, error) {
	var (
		advisory      model.Advisory
		domain        string
		recJSON       string
		briefMD       string
		briefProvider string
	)

	err := s.db.QueryRow(
		"SELECT id, created_at, problem, domain, recommendation, brief_md, brief_provider FROM advisories WHERE id = ?",
		id,
	).Scan(&advisory.ID, &advisory.CreatedAt, &advisory.Problem, &domain, &recJSON, &briefMD, &briefProvider)
	if err != nil {
		return nil, fmt.Errorf("get advisory: %w", err)
	}

	advisory.Domain = model.ParseLabel(domain)

	if err := json.Unmarshal([]byte(recJSON), &advisory.Recommendation); err != nil {
		return nil, fmt.Errorf("unmarshal recommendation: %w", err)
	}

	if briefMD != "" || briefProvider != "" {
		advisory.LLM = &model.LLMBrief{
			Enabled:  briefMD != "",
			Provider: briefProvider,
			BriefMD:  briefMD,
		}
	}

	return &advisory, nil
}

// List returns recent advisories with pagination, newest first
func (s *Store) List(limit, offset int) ([]model.Advisory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT id, created_at, problem, domain FROM advisories ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list advisories: %w", err)
	}
	defer rows.Close()

	var advisories []model.Advisory
	for rows.Next() {
		var (
			a      model.Advisory
			domain string
		)
		if err := rows.Scan(&a.ID, &a.CreatedAt, &a.Problem, &domain); err != nil {
			return nil, fmt.Errorf("scan advisory: %w", err)
		}
		a.Domain = model.ParseLabel(domain)
		advisories = append(advisories, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advisories: %w", err)
	}

	return advisories, nil
}

// ListByDomain returns recent advisories for one domain label
func (s *Store) ListByDomain(label model.DomainLabel, limit int) ([]model.Advisory, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT id, created_at, problem, domain FROM advisories WHERE domain = ? ORDER BY created_at DESC LIMIT ?",
		string(label), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list advisories by domain: %w", err)
	}
	defer rows.Close()

	var advisories []model.Advisory
	for rows.Next() {
		var (
			a      model.Advisory
			domain string
		)
		if err := rows.Scan(&a.ID, &a.CreatedAt, &a.Problem, &domain); err != nil {
			return nil, fmt.Errorf("scan advisory: %w", err)
		}
		a.Domain = model.ParseLabel(domain)
		advisories = append(advisories, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate advisories: %w", err)
	}

	return advisories, nil
}

// Delete removes an advisory by ID
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM advisories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete advisory: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
