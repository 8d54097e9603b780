package domain

import "time"

// Draft is a recipe kept in the local recipe book between sessions.
type Draft struct {
	ID        string
	Recipe    Recipe
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns the first 8 characters of the ID for listings.
func (d *Draft) DisplayID() string {
	if len(d.ID) >= 8 {
		return d.ID[:8]
	}
	return d.ID
}
