package inventory

import "time"

// Item is one per-site stock line.
type Item struct {
	ID        string
	SiteID    string
	Name      string
	Quantity  float64
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
