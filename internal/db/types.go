package db

import "time"

// Project is one saved builder project. The graph and the latest compile
// artifact are stored as opaque JSON blobs; the store never interprets them.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Settings  string    `json:"settings"` // JSON blob: generation options
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store interface defines the methods for persistent storage of builder
// projects.
type Store interface {
	Close() error

	SaveProject(p Project) error
	GetProject(id string) (Project, error)
	ListProjects() ([]Project, error)
	DeleteProject(id string) error

	// Graph and artifact blobs, keyed by project.
	SaveGraph(projectID, graphJSON string) error
	GetGraph(projectID string) (string, error)
	SaveArtifact(projectID, artifactJSON string) error
	GetArtifact(projectID string) (string, error)

	// Maintenance
	Cleanup() error
}
