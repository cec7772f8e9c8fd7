package domain

// Character is a player character. Only active characters take part in distributions.
type Character struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
