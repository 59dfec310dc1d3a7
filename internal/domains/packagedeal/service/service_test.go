package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	packageMocks "hotel/internal/domains/packagedeal/mocks"
	"hotel/internal/domains/packagedeal/model"
	"hotel/internal/domains/packagedeal/model/dto"
	"hotel/internal/domains/packagedeal/service"
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
	repo    *packageMocks.MockPackage
	cache   *cacheMocks.MockRedisCache
	svc     service.Package
	evicted chan string // keys deleted or patterns cleared in the background
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    packageMocks.NewMockPackage(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		evicted: make(chan string, 16),
	}

	evict := func(_ context.Context, key string) error {
		f.evicted <- key

		return nil
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(evict).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).DoAndReturn(evict).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

// expectEvicted waits for the background invalidation to touch every key.
func (f fixture) expectEvicted(t *testing.T, keys ...string) {
	t.Helper()

	seen := map[string]bool{}
	deadline := time.After(time.Second)

	for len(seen) < len(keys) {
		select {
		case key := <-f.evicted:
			for _, want := range keys {
				if key == want {
					seen[key] = true
				}
			}
		case <-deadline:
			t.Fatalf("cache keys %v not invalidated, saw %v", keys, seen)
		}
	}
}

func actor(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func intPtr(i int) *int {
	return &i
}

func TestCreate(t *testing.T) {
	t.Run("stores and invalidates lists", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, row model.Package) error {
				assert.NotEmpty(t, row.ID)
				assert.Equal(t, "front-desk", row.CreatedBy)
				assert.Equal(t, "front-desk", row.ModifiedBy)

				return nil
			})

		res, err := f.svc.Create(actor("front-desk"), dto.CreatePackageRequest{Name: "Honeymoon", Price: 5000, DurationNights: 3})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		f.expectEvicted(t, "package:gets"+constant.Asterix, "package:count"+constant.Asterix)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(actor("front-desk"), dto.CreatePackageRequest{Name: "Honeymoon", Price: 5000, DurationNights: 3})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "cache hit skips the store",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "package:get:x-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from the store",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "package:get:x-1", gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "x-1", Name: "Honeymoon"}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "package:get:x-1", gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), "x-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 2}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).
		Return([]model.Package{{ID: "x-1", Name: "Honeymoon"}, {ID: "x-2", Name: "Honeymoon"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Packages, 2)
	assert.Equal(t, "Honeymoon", res.Packages[0].Name)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUpdate(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, nil)

		err := f.svc.Update(actor("manager"), dto.UpdatePackageRequest{DurationNights: intPtr(4)}, "x-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("writes only the sent fields", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "x-1", Name: "Honeymoon"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 4, fields[model.FieldDurationNights])
				assert.Equal(t, "manager", fields[constant.FieldModifiedBy])
				assert.Len(t, fields, 3)

				return nil
			})

		require.NoError(t, f.svc.Update(actor("manager"), dto.UpdatePackageRequest{DurationNights: intPtr(4)}, "x-1"))
		f.expectEvicted(t, "package:get:x-1", "package:gets"+constant.Asterix, "package:count"+constant.Asterix)
	})
}

func TestDelete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "x-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), "x-1"))
		f.expectEvicted(t, "package:get:x-1")
	})
}
