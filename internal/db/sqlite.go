package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			settings TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS project_graphs (
			project_id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS project_artifacts (
			project_id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveProject inserts or updates a project record
func (s *SQLiteStore) SaveProject(p Project) error {
	now := time.Now()
	query := `INSERT INTO projects (id, name, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, settings = excluded.settings, updated_at = excluded.updated_at`
	_, err := s.db.Exec(query, p.ID, p.Name, p.Settings, now, now)
	return err
}

// GetProject retrieves a project by ID
func (s *SQLiteStore) GetProject(id string) (Project, error) {
	var p Project
	query := `SELECT id, name, settings, created_at, updated_at FROM projects WHERE id = ?`
	err := s.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Settings, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return Project{}, fmt.Errorf("project %s not found", id)
	}
	return p, err
}

// ListProjects returns all projects, most recently updated first
func (s *SQLiteStore) ListProjects() ([]Project, error) {
	query := `SELECT id, name, settings, created_at, updated_at FROM projects ORDER BY updated_at DESC`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Settings, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// DeleteProject removes a project and its stored blobs
func (s *SQLiteStore) DeleteProject(id string) error {
	for _, q := range []string{
		`DELETE FROM project_graphs WHERE project_id = ?`,
		`DELETE FROM project_artifacts WHERE project_id = ?`,
		`DELETE FROM projects WHERE id = ?`,
	} {
		if _, err := s.db.Exec(q, id); err != nil {
			return err
		}
	}
	return nil
}

// SaveGraph stores the serialized graph for a project
func (s *SQLiteStore) SaveGraph(projectID, graphJSON string) error {
	return s.saveBlob("project_graphs", projectID, graphJSON)
}

// GetGraph retrieves the serialized graph for a project, "" if none saved
func (s *SQLiteStore) GetGraph(projectID string) (string, error) {
	return s.getBlob("project_graphs", projectID)
}

// SaveArtifact stores the latest compile artifact for a project
func (s *SQLiteStore) SaveArtifact(projectID, artifactJSON string) error {
	return s.saveBlob("project_artifacts", projectID, artifactJSON)
}

// GetArtifact retrieves the latest compile artifact, "" if none saved
func (s *SQLiteStore) GetArtifact(projectID string) (string, error) {
	return s.getBlob("project_artifacts", projectID)
}

func (s *SQLiteStore) saveBlob(table, projectID, content string) error {
	query := fmt.Sprintf(`INSERT INTO %s (project_id, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`, table)
	_, err := s.db.Exec(query, projectID, content, time.Now())
	return err
}

func (s *SQLiteStore) getBlob(table, projectID string) (string, error) {
	var content string
	query := fmt.Sprintf(`SELECT content FROM %s WHERE project_id = ?`, table)
	err := s.db.QueryRow(query, projectID).Scan(&content)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return content, err
}

// Cleanup removes orphaned blobs whose project record is gone
func (s *SQLiteStore) Cleanup() error {
	for _, q := range []string{
		`DELETE FROM project_graphs WHERE project_id NOT IN (SELECT id FROM projects)`,
		`DELETE FROM project_artifacts WHERE project_id NOT IN (SELECT id FROM projects)`,
	} {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
