package models

import "time"

// Article is a blog post. Author holds the creator's username and is the
// only thing write access is decided on.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
