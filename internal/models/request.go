package models

import "time"

// Request is an item request: a user asks for something nobody listed yet.
// Items answering it reference the request id.
type Request struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	RequesterID  int64     `json:"requesterId"`
	CreationDate time.Time `json:"created"`
}

type CreateRequestRequest struct {
	Description string `json:"description"`
}
