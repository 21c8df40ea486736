package model

import "time"

// Project is a portfolio entry shown on the public showcase and
// managed from the dashboard. Link and Description are optional.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
