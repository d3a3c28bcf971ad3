package models

import "time"

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Booking struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"itemId"`
	BookerID  int64     `json:"bookerId"`
	StartDate time.Time `json:"start"`
	EndDate   time.Time `json:"end"`
	Status    string    `json:"status"`
}

type CreateBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
