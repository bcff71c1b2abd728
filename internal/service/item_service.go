package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	cache    domain.Cache
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

// NewItemService constructs the item catalog. cache may be nil, in which
// case every read goes to the repository.
func NewItemService(repo domain.Repository, cache domain.Cache, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, item models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, apperr.Validationf("item name must not be blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, apperr.Validationf("item description must not be blank")
	}

	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != nil {
		if _, err := s.repo.GetRequest(ctx, *item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		_ = s.eventBus.PublishJSON(events.EventItemCreated, events.ItemEventPayload{ItemID: item.ID, OwnerID: ownerID})
	}
	return &item, nil
}

// UpdateItem applies the non-nil patch fields. Only the owner may update.
func (s *ItemService) UpdateItem(ctx context.Context, callerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != callerID {
		return nil, apperr.Ownershipf("user %d does not own item %d", callerID, itemID)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validationf("item name must not be blank")
		}
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, apperr.Validationf("item description must not be blank")
		}
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx, itemViewKey(itemID))
	return item, nil
}

// GetItem returns the item with its comments. The owner additionally sees
// the last and next bookings; the public view is served read-through.
func (s *ItemService) GetItem(ctx context.Context, callerID, itemID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == callerID {
		return s.ownerView(ctx, item)
	}

	key := itemViewKey(itemID)
	var cached models.ItemView
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	comments, err := s.repo.ListCommentsForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := &models.ItemView{Item: *item, Comments: comments}
	s.cacheSet(ctx, key, view)
	return view, nil
}

// ListByOwner returns the owner's items with comments and schedule info.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]models.ItemView, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItemsByOwner(ctx, ownerID, page.Normalize())
	if err != nil {
		return nil, err
	}

	views := make([]models.ItemView, 0, len(items))
	for i := range items {
		view, err := s.ownerView(ctx, &items[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Search returns available items matching text in name or description.
// Empty text returns an empty list without touching storage.
func (s *ItemService) Search(ctx context.Context, text string, page models.Page) ([]models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}

	page = page.Normalize()
	key := searchKey(text, page)
	var cached []models.Item
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.repo.SearchItems(ctx, text, page)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *ItemService) ownerView(ctx context.Context, item *models.Item) (*models.ItemView, error) {
	now := s.now()

	last, err := s.repo.LastBooking(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.repo.NextBooking(ctx, item.ID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListCommentsForItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &models.ItemView{
		Item:        *item,
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}, nil
}

func (s *ItemService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		metrics.IncCache("error")
		s.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if found {
		metrics.IncCache("hit")
		return true
	}
	metrics.IncCache("miss")
	return false
}

func (s *ItemService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *ItemService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn().Err(err).Msg("cache invalidation failed")
	}
}

func itemViewKey(itemID int64) string {
	return fmt.Sprintf("item_view:%d", itemID)
}

func searchKey(text string, page models.Page) string {
	return fmt.Sprintf("item_search:%s:%d:%d", strings.ToLower(text), page.From, page.Size)
}
