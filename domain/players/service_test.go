package players

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/sheets"
	apperrors "github.com/akeren/sunday-signup/pkg/errors"
	pkgredis "github.com/akeren/sunday-signup/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCache(t *testing.T) *pkgredis.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return pkgredis.NewRedisCacheWithClient(client, "test:")
}

func TestPlayerService_LookupByPhone_Remote(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := NewMockLookupGateway(ctrl)
	directory := NewMockLocalDirectory(ctrl)
	cache := newTestCache(t)

	service := NewPlayerService(log.NewDiscardLogger(), gateway, directory, cache, time.Minute)

	gateway.EXPECT().Configured().Return(true).Times(1)
	gateway.EXPECT().LookupPhone(gomock.Any(), "5551234567").Return(&sheets.LookupResult{
		Found: true,
		Player: &sheets.Player{
			Name:       "Jane Doe",
			Phone:      "555.123.4567",
			Email:      "jane@example.com",
			HomeCourt:  "Santa Monica",
			SkillLevel: "3.5",
			BestDays:   "Saturday, Sunday",
			VIPChoice:  "Yes - VIP",
		},
	}, nil).Times(1)

	got, err := service.LookupByPhone(context.Background(), "(555) 123-4567")
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, SourceRemote, got.Source)
	assert.Equal(t, "Jane Doe", got.Player.Names)
	assert.Equal(t, "(555) 123-4567", got.Player.Phone)
	assert.Equal(t, []string{"Saturday", "Sunday"}, got.Player.BestDays)
	assert.Nil(t, got.Player.BestTimes)
	assert.True(t, got.Player.VIP)

	cached, err := service.LookupByPhone(context.Background(), "555-123-4567")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, cached.Source)
	assert.Equal(t, got.Player, cached.Player)
}

func TestPlayerService_LookupByPhone_RemoteNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := NewMockLookupGateway(ctrl)

	service := NewPlayerService(log.NewDiscardLogger(), gateway, NewMockLocalDirectory(ctrl), nil, time.Minute)

	gateway.EXPECT().Configured().Return(true)
	gateway.EXPECT().LookupPhone(gomock.Any(), "5551234567").Return(&sheets.LookupResult{Found: false}, nil)

	got, err := service.LookupByPhone(context.Background(), "5551234567")
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Nil(t, got.Player)
}

func TestPlayerService_LookupByPhone_FallsBackToLocal(t *testing.T) {
	latest := &models.Signup{
		Names:     "Sam Roe",
		Phone:     "5551234567",
		Email:     "sam@example.com",
		VIP:       true,
		HomeCourt: "Venice",
		BestTimes: "Morning, Evening",
	}

	t.Run("remote failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := NewMockLookupGateway(ctrl)
		directory := NewMockLocalDirectory(ctrl)

		gateway.EXPECT().Configured().Return(true)
		gateway.EXPECT().LookupPhone(gomock.Any(), "5551234567").Return(nil, errors.New("sheets: unexpected status 502"))
		directory.EXPECT().FindLatestByPhone(gomock.Any(), "5551234567").Return(latest, nil)

		service := NewPlayerService(log.NewDiscardLogger(), gateway, directory, nil, time.Minute)

		got, err := service.LookupByPhone(context.Background(), "555 123 4567")
		require.NoError(t, err)
		assert.True(t, got.Found)
		assert.Equal(t, SourceLocal, got.Source)
		assert.Equal(t, "Sam Roe", got.Player.Names)
		assert.Equal(t, []string{"Morning", "Evening"}, got.Player.BestTimes)
	})

	t.Run("remote not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := NewMockLookupGateway(ctrl)
		directory := NewMockLocalDirectory(ctrl)

		gateway.EXPECT().Configured().Return(false)
		directory.EXPECT().FindLatestByPhone(gomock.Any(), "5551234567").
			Return(nil, apperrors.NewNotFoundError("no signup for phone", nil))

		service := NewPlayerService(log.NewDiscardLogger(), gateway, directory, nil, time.Minute)

		got, err := service.LookupByPhone(context.Background(), "5551234567")
		require.NoError(t, err)
		assert.False(t, got.Found)
		assert.Equal(t, SourceLocal, got.Source)
	})

	t.Run("database error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := NewMockLookupGateway(ctrl)
		directory := NewMockLocalDirectory(ctrl)

		gateway.EXPECT().Configured().Return(false)
		directory.EXPECT().FindLatestByPhone(gomock.Any(), "5551234567").
			Return(nil, apperrors.NewDatabaseError("failed to look up signup by phone", errors.New("conn reset")))

		service := NewPlayerService(log.NewDiscardLogger(), gateway, directory, nil, time.Minute)

		_, err := service.LookupByPhone(context.Background(), "5551234567")
		assert.Equal(t, apperrors.ErrorTypeDatabaseError, apperrors.GetErrorType(err))
	})
}

func TestPlayerService_LookupByPhone_InvalidPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewPlayerService(log.NewDiscardLogger(), NewMockLookupGateway(ctrl), NewMockLocalDirectory(ctrl), nil, time.Minute)

	_, err := service.LookupByPhone(context.Background(), "555-1234")

	require.Error(t, err)
	details := apperrors.ValidationDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "phone", details[0].Field)
}
