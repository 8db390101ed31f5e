package model

import "time"

// Team mirrors the `teams` table.
type Team struct {
	ID          uint64    // teams.id
	Name        string    // teams.name
	Description string    // teams.description
	IsActive    bool      // teams.is_active
	CreatedAt   time.Time // teams.created_at
	UpdatedAt   time.Time // teams.updated_at
}

// Project mirrors the `projects` table.
type Project struct {
	ID          uint64    // projects.id
	Name        string    // projects.name
	Description string    // projects.description
	IsActive    bool      // projects.is_active
	CreatedAt   time.Time // projects.created_at
	UpdatedAt   time.Time // projects.updated_at
}
