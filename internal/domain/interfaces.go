package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	GetOwnerItems(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	GetItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
}

type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	// List queries order by start date descending; now is captured once
	// per request by the caller.
	ListByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time) ([]*models.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state models.State, now time.Time) ([]*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetItemComments(ctx context.Context, itemID int64) ([]*models.Comment, error)
	GetOwnerComments(ctx context.Context, ownerID int64) ([]*models.Comment, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	GetUserRequests(ctx context.Context, requesterID int64) ([]*models.Request, error)
	GetAllRequests(ctx context.Context) ([]*models.Request, error)
}

// Store is the full persistence surface; *database.DB implements it.
type Store interface {
	UserStore
	ItemStore
	BookingStore
	CommentStore
	RequestStore
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RateLimiter gates requests per client key within a sliding window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
