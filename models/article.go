package models

import "time"

// Article is a marketing/blog entry served alongside the booking flow.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	CoverImage  string    `json:"cover_image,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
