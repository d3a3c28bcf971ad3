package models

import "time"

// Response projections are assembled from stored rows by the explicit
// conversion functions below; there is no reflection-based mapping.

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type ItemSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingResponse struct {
	ID     int64       `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Item   ItemSummary `json:"item"`
	Booker UserSummary `json:"booker"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"itemId"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemWithCommentsResponse struct {
	ItemResponse
	Comments []CommentResponse `json:"comments"`
}

// ItemBoardResponse is the owner's dashboard row: the item plus the start
// instants of its closest bookings around "now" and its comments.
type ItemBoardResponse struct {
	ItemResponse
	LastBooking *time.Time        `json:"lastBooking,omitempty"`
	NextBooking *time.Time        `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
}

type RequestWithAnswersResponse struct {
	RequestResponse
	Items []ItemResponse `json:"items"`
}

func UserToResponse(u *User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ItemToResponse(i *Item) *ItemResponse {
	return &ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
}

func BookingToResponse(b *Booking, item *Item, booker *User) *BookingResponse {
	return &BookingResponse{
		ID:     b.ID,
		Start:  b.StartDate,
		End:    b.EndDate,
		Status: b.Status,
		Item:   ItemSummary{ID: item.ID, Name: item.Name, Description: item.Description},
		Booker: UserSummary{ID: booker.ID, Name: booker.Name, Email: booker.Email},
	}
}

func CommentToResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		ItemID:     c.ItemID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.CreationDate,
	}
}

func RequestToResponse(r *Request) *RequestResponse {
	return &RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     r.CreationDate,
	}
}
