package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, page models.Page) ([]models.Item, error)
	ListItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]models.ItemRequest, error)
	ListRequestsExcept(ctx context.Context, requesterID int64, page models.Page) ([]models.ItemRequest, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingView(ctx context.Context, id int64) (*models.BookingView, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	ListBookingsForBooker(ctx context.Context, bookerID int64, state string, now time.Time, page models.Page) ([]models.BookingView, error)
	ListBookingsForOwner(ctx context.Context, ownerID int64, state string, now time.Time, page models.Page) ([]models.BookingView, error)
	LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingRef, error)
	HasFinishedBooking(ctx context.Context, userID, itemID int64, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsForItem(ctx context.Context, itemID int64) ([]models.CommentView, error)
}

// Cache is a best-effort read-through store for rendered views. Get returns
// (false, nil) on miss; errors are reported so failover wrappers can react.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
