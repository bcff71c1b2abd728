package service

import (
	"context"
	"io"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRequestService(repo *mockRepo) *RequestService {
	logger := zerolog.New(io.Discard)
	return NewRequestService(repo, &logger)
}

func TestRequestService_CreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newRequestService(repo)

		repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
		repo.On("CreateRequest", ctx, mock.AnythingOfType("*models.ItemRequest")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.ItemRequest).ID = 4
		}).Return(nil).Once()

		got, err := svc.CreateRequest(ctx, 1, "need a ladder")
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
	})

	t.Run("BlankDescription", func(t *testing.T) {
		svc := newRequestService(new(mockRepo))

		_, err := svc.CreateRequest(ctx, 1, " ")
		assert.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("UnknownRequester", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newRequestService(repo)

		repo.On("GetUser", ctx, int64(9)).Return(nil, apperr.NotFoundf("user 9 not found")).Once()

		_, err := svc.CreateRequest(ctx, 9, "need a ladder")
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestRequestService_ListOwn(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newRequestService(repo)

	requests := []models.ItemRequest{{ID: 4, RequesterID: 1, Description: "ladder"}}
	items := []models.Item{{ID: 3, Name: "Ladder"}}

	repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
	repo.On("ListRequestsByRequester", ctx, int64(1)).Return(requests, nil).Once()
	repo.On("ListItemsByRequest", ctx, int64(4)).Return(items, nil).Once()

	views, err := svc.ListOwn(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ladder", views[0].Description)
	assert.Equal(t, items, views[0].Items)
}

func TestRequestService_ListAll(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := newRequestService(repo)

	page := models.Page{From: 0, Size: 10}
	requests := []models.ItemRequest{{ID: 4, RequesterID: 2}}

	repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
	repo.On("ListRequestsExcept", ctx, int64(1), page).Return(requests, nil).Once()
	repo.On("ListItemsByRequest", ctx, int64(4)).Return([]models.Item{}, nil).Once()

	views, err := svc.ListAll(ctx, 1, page)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Empty(t, views[0].Items)
}

func TestRequestService_GetRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newRequestService(repo)

		request := &models.ItemRequest{ID: 4, RequesterID: 2, Description: "ladder"}
		repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
		repo.On("GetRequest", ctx, int64(4)).Return(request, nil).Once()
		repo.On("ListItemsByRequest", ctx, int64(4)).Return([]models.Item{}, nil).Once()

		view, err := svc.GetRequest(ctx, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, "ladder", view.Description)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newRequestService(repo)

		repo.On("GetUser", ctx, int64(1)).Return(&models.User{ID: 1}, nil).Once()
		repo.On("GetRequest", ctx, int64(99)).Return(nil, apperr.NotFoundf("request 99 not found")).Once()

		_, err := svc.GetRequest(ctx, 1, 99)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}
