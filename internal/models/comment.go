package models

import "time"

// Comment is a review left by a past renter. AuthorName is denormalized
// by the store on reads (joined from users) and ignored on writes.
type Comment struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"itemId"`
	AuthorID     int64     `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Text         string    `json:"text"`
	CreationDate time.Time `json:"created"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
