package service

import (
	"context"
	"testing"

	"nexusconnect-backend/models"
	"nexusconnect-backend/service/servicetest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftGetWithoutSave(t *testing.T) {
	svc := NewDraftService(DraftWithStore(servicetest.NewDrafts()))

	draft, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, draft.CurrentStep)
	assert.NotNil(t, draft.FormData)
	assert.Empty(t, draft.FormData)
	assert.Nil(t, draft.UpdatedAt)
}

func TestDraftSaveAndDelete(t *testing.T) {
	svc := NewDraftService(DraftWithStore(servicetest.NewDrafts()))
	ctx := context.Background()
	userID := uuid.New()

	saved, err := svc.Save(ctx, userID, &models.DraftPayload{
		FormData: map[string]interface{}{"first_name": "Awa", "tags": []interface{}{"a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, saved.CurrentStep)
	assert.NotNil(t, saved.UpdatedAt)

	step := 3
	saved, err = svc.Save(ctx, userID, &models.DraftPayload{FormData: map[string]interface{}{"city": "Dakar"}, CurrentStep: &step})
	require.NoError(t, err)
	assert.Equal(t, 3, saved.CurrentStep)

	got, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.FormData{"city": "Dakar"}, got.FormData)
	assert.Equal(t, 3, got.CurrentStep)

	require.NoError(t, svc.Delete(ctx, userID))
	require.NoError(t, svc.Delete(ctx, userID))

	got, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStep)
	assert.Nil(t, got.UpdatedAt)
}
