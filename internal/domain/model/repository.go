package model

import "time"

// Repository represents a GitHub repository owned by the authenticated user.
type Repository struct {
	Owner    string
	Name     string
	FullName string
	PushedAt time.Time
}
