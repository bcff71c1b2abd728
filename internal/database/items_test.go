package database

import (
	"context"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem_WithRequestLink(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requester := createTestUser(t, db, "Requester", "req@example.com")

	request := &models.ItemRequest{Description: "need a drill", RequesterID: requester.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{Name: "Drill", Description: "power drill", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItem(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, request.ID, *got.RequestID)

	linked, err := db.ListItemsByRequest(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, item.ID, linked[0].ID)
}

func TestGetItem_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetItem(context.Background(), 99)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")

	drill := createTestItem(t, db, owner.ID, "Power Drill", true)
	createTestItem(t, db, owner.ID, "Hammer", true)
	hidden := &models.Item{Name: "Another drill", Description: "broken", Available: false, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, hidden))

	page := models.Page{From: 0, Size: 10}

	found, err := db.SearchItems(ctx, "dRiLl", page)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, drill.ID, found[0].ID)

	// Description matches too.
	found, err = db.SearchItems(ctx, "description", page)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = db.SearchItems(ctx, "nothing-like-this", page)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestListItemsByOwner_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	for _, name := range []string{"a", "b", "c"} {
		createTestItem(t, db, owner.ID, name, true)
	}
	createTestItem(t, db, other.ID, "not-mine", true)

	items, err := db.ListItemsByOwner(ctx, owner.ID, models.Page{From: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Name)
}
