package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
	"github.com/Bimbetta/Scanner/internal/infrastructure/storage"
)

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_RecordScan(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.RecordScan(ctx, 1, 10, 3)
	require.NoError(t, err)
	require.Equal(t, 1, user.ImagesScanned)
	require.Equal(t, 3, user.CodesFound)

	user, err = svc.RecordScan(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, user.ImagesScanned)
	require.Equal(t, 3, user.CodesFound)
}
