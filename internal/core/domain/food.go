package domain

import "time"

// RatingSummary is the cached projection of a food's review set. It is
// owned by the review service: only the summary recompute writes it, and
// it must always equal {mean(ratings), count} over the live reviews,
// or {0, 0} when the food has none.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Food is a catalog entry.
type Food struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Cuisine     string        `json:"cuisine"`
	ImageURL    string        `json:"image_url"`
	IsFeatured  bool          `json:"is_featured"`
	Tags        []string      `json:"tags,omitempty"`
	Rating      RatingSummary `json:"rating_summary"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
