package service

import (
	"context"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, requesterID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validationf("request description must not be blank")
	}
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListOwn returns the caller's requests, newest first, with fulfilling items.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, requesterID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListRequestsByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// ListAll returns other users' requests, newest first, paginated.
func (s *RequestService) ListAll(ctx context.Context, callerID int64, page models.Page) ([]models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, callerID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListRequestsExcept(ctx, callerID, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, callerID, requestID int64) (*models.ItemRequestView, error) {
	if _, err := s.repo.GetUser(ctx, callerID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	views, err := s.attachItems(ctx, []models.ItemRequest{*request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) attachItems(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequestView, error) {
	views := make([]models.ItemRequestView, 0, len(requests))
	for _, request := range requests {
		items, err := s.repo.ListItemsByRequest(ctx, request.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.ItemRequestView{ItemRequest: request, Items: items})
	}
	return views, nil
}
