package site

import "time"

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

type Site struct {
	ID        string
	Name      string
	Location  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
