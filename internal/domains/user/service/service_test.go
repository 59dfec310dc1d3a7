package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	// background cache writes and invalidations are not under test
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func actor(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestCreate(t *testing.T) {
	t.Run("normalizes email and leaves roles to the resolver", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) error {
				assert.Equal(t, "desk@hotel.test", user.Email)
				assert.Equal(t, "admin-1", user.CreatedBy)
				assert.NotEqual(t, "password123", user.Password)

				return nil
			})

		res, err := f.svc.Create(actor("admin-1"), dto.CreateUserRequest{Email: " Desk@Hotel.test ", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "desk@hotel.test", res.Email)
		assert.Empty(t, res.Roles)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(actor("admin-1"), dto.CreateUserRequest{Email: "desk@hotel.test", Password: "password123"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("insert error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Create(actor("admin-1"), dto.CreateUserRequest{Email: "desk@hotel.test", Password: "password123"})

		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	t.Run("loads on cache miss", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "user:get:u-1", gomock.Any()).Return(errCacheMiss)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Email: "desk@hotel.test", Active: true}, nil)

		res, err := f.svc.Get(context.Background(), "u-1")

		require.NoError(t, err)
		assert.Equal(t, "u-1", res.ID)
		assert.Empty(t, res.Roles)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{{ID: "u-1"}, {ID: "u-2"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUpdate(t *testing.T) {
	name := "Front Desk"

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(actor("admin-1"), dto.UpdateUserRequest{}, "u-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing user", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(actor("admin-1"), dto.UpdateUserRequest{FullName: &name}, "u-1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("updates", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, name, fields[model.FieldFullName])

				return nil
			})

		assert.NoError(t, f.svc.Update(actor("admin-1"), dto.UpdateUserRequest{FullName: &name}, "u-1"))
	})

	t.Run("profile requires a user", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{FullName: &name}, "")

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestDelete(t *testing.T) {
	t.Run("cannot delete self", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(actor("u-1"), "u-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("deletes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(actor("admin-1"), "u-2"))
	})
}
