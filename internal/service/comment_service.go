package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type CommentService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewCommentService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// AddComment creates a post-rental comment. The author must hold an approved
// booking of the item that already ended.
func (s *CommentService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validationf("comment text must not be blank")
	}

	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	eligible, err := s.repo.HasFinishedBooking(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, apperr.Validationf("user %d has no finished booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{Text: text, ItemID: itemID, AuthorID: authorID}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventCommentAdded, events.CommentEventPayload{
			CommentID: comment.ID,
			ItemID:    itemID,
			AuthorID:  authorID,
		})
	}

	return &models.CommentView{Comment: *comment, AuthorName: author.Name}, nil
}
