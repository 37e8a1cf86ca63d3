package model

import "time"

// User is the record behind the users CRUD recipes.
// It carries no persistence tags so every store can map it its own way.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
