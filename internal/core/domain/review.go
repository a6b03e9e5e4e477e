package domain

import "time"

// Review is a single user's rating of a food. At most one review exists
// per (FoodID, UserID) pair; the service checks before insert and the
// storage unique index backstops the race.
type Review struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"food_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summarize computes the rating summary over a review set. An empty set
// yields the zero summary rather than NaN.
func Summarize(reviews []*Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{}
	}
	var total int
	for _, r := range reviews {
		total += r.Rating
	}
	return RatingSummary{
		Average: float64(total) / float64(len(reviews)),
		Count:   int64(len(reviews)),
	}
}
