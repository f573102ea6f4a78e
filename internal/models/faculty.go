package models

import "time"

// Location is the geographic address of a faculty.
type Location struct {
	ID        string  `db:"id" json:"id"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
	Country   string  `db:"country" json:"country"`
	Address   string  `db:"address" json:"address"`
}

// Faculty is an organizational unit. Deleting a faculty archives it.
type Faculty struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	LocationID *string   `db:"location_id" json:"-"`
	Location   *Location `db:"-" json:"location,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Article is a publication attributed to a faculty.
type Article struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ArticleFilter describes query params for listing articles.
type ArticleFilter struct {
	FacultyID string
	Page      int
	PageSize  int
}
