package service

import (
	"context"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateBooking validates the window and references, then persists a WAITING
// booking. Checks run in a fixed order; the first failure wins.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*models.BookingView, error) {
	now := s.now()

	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validationf("booking start and end are required")
	}
	if start.Before(now) || end.Before(now) {
		return nil, apperr.Validationf("booking window must not be in the past")
	}
	if !end.After(start) {
		return nil, apperr.Validationf("booking end must be after start")
	}

	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, apperr.Validationf("item %d is not available for booking", itemID)
	}
	if item.OwnerID == bookerID {
		return nil, apperr.SelfBookingf("user %d cannot book their own item %d", bookerID, itemID)
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		StartAt:  start,
		EndAt:    end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	view, err := s.repo.GetBookingView(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, view, 0)
	return view, nil
}

// ApproveBooking sets the booking status. Only the item's owner may call it.
// Approving twice is an error; rejecting an already rejected booking is an
// idempotent success.
func (s *BookingService) ApproveBooking(ctx context.Context, callerID, bookingID int64, approved bool) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, apperr.Ownershipf("user %d does not own item %d", callerID, item.ID)
	}

	switch {
	case booking.Status == models.StatusApproved:
		return nil, apperr.Validationf("booking %d is already approved", bookingID)
	case booking.Status == models.StatusRejected && approved:
		return nil, apperr.Validationf("booking %d is already rejected", bookingID)
	case booking.Status == models.StatusRejected:
		// Repeated reject is a no-op.
		return s.repo.GetBookingView(ctx, bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	view, err := s.repo.GetBookingView(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(eventType, view, callerID)
	return view, nil
}

// GetBooking returns the booking view to its booker or the item's owner.
func (s *BookingService) GetBooking(ctx context.Context, callerID, bookingID int64) (*models.BookingView, error) {
	view, err := s.repo.GetBookingView(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, view.ItemID)
	if err != nil {
		return nil, err
	}
	if view.BookerID != callerID && item.OwnerID != callerID {
		return nil, apperr.WrongCustomerf("user %d has no access to booking %d", callerID, bookingID)
	}
	return view, nil
}

// ListForBooker returns the caller's bookings sliced by state.
func (s *BookingService) ListForBooker(ctx context.Context, callerID int64, state string, page models.Page) ([]models.BookingView, error) {
	if err := s.checkListArgs(ctx, callerID, state); err != nil {
		return nil, err
	}
	return s.repo.ListBookingsForBooker(ctx, callerID, state, s.now(), page.Normalize())
}

// ListForOwner returns bookings against the caller's items sliced by state.
func (s *BookingService) ListForOwner(ctx context.Context, callerID int64, state string, page models.Page) ([]models.BookingView, error) {
	if err := s.checkListArgs(ctx, callerID, state); err != nil {
		return nil, err
	}
	return s.repo.ListBookingsForOwner(ctx, callerID, state, s.now(), page.Normalize())
}

func (s *BookingService) checkListArgs(ctx context.Context, callerID int64, state string) error {
	if !models.ValidState(state) {
		return apperr.Validationf("Unknown state: %s", state)
	}
	if _, err := s.repo.GetUser(ctx, callerID); err != nil {
		return err
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, view *models.BookingView, changedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  view.ID,
		ItemID:     view.ItemID,
		ItemName:   view.ItemName,
		BookerID:   view.BookerID,
		BookerName: view.BookerName,
		StartAt:    view.StartAt,
		EndAt:      view.EndAt,
		Status:     view.Status,
		ChangedBy:  changedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", view.ID).Msg("publish event error")
	}
}
