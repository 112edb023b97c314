package entity

import (
	"time"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a public testimonial left from the review form.
type Review struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Rating    int       `json:"rating" firestore:"rating"`
	Comment   string    `json:"comment" firestore:"comment"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
