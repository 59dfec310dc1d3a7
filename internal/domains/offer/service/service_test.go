package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	offerMocks "hotel/internal/domains/offer/mocks"
	"hotel/internal/domains/offer/model"
	"hotel/internal/domains/offer/model/dto"
	"hotel/internal/domains/offer/service"
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
	repo    *offerMocks.MockOffer
	cache   *cacheMocks.MockRedisCache
	svc     service.Offer
	evicted chan string // keys deleted or patterns cleared in the background
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    offerMocks.NewMockOffer(ctrl),
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

func strPtr(s string) *string {
	return &s
}

func TestCreate(t *testing.T) {
	t.Run("stores and invalidates lists", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, row model.Offer) error {
				assert.NotEmpty(t, row.ID)
				assert.Equal(t, "front-desk", row.CreatedBy)
				assert.Equal(t, "front-desk", row.ModifiedBy)

				return nil
			})

		res, err := f.svc.Create(actor("front-desk"), dto.CreateOfferRequest{Title: "Early bird", DiscountPercent: 15, ValidFrom: strPtr("2026-05-01"), ValidUntil: strPtr("2026-06-30")})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		f.expectEvicted(t, "offer:gets"+constant.Asterix, "offer:count"+constant.Asterix)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := f.svc.Create(actor("front-desk"), dto.CreateOfferRequest{Title: "Early bird", DiscountPercent: 15, ValidFrom: strPtr("2026-05-01"), ValidUntil: strPtr("2026-06-30")})

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
				f.cache.EXPECT().Get(gomock.Any(), "offer:get:x-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from the store",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "offer:get:x-1", gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{ID: "x-1", Title: "Early bird"}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "offer:get:x-1", gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{}, nil)
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
		Return([]model.Offer{{ID: "x-1", Title: "Early bird"}, {ID: "x-2", Title: "Early bird"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Offers, 2)
	assert.Equal(t, "Early bird", res.Offers[0].Title)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestUpdate(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{}, nil)

		err := f.svc.Update(actor("manager"), dto.UpdateOfferRequest{Code: strPtr("SUMMER20")}, "x-404")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("writes only the sent fields", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{ID: "x-1", Title: "Early bird"}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "SUMMER20", fields[model.FieldCode])
				assert.Equal(t, "manager", fields[constant.FieldModifiedBy])
				assert.Len(t, fields, 3)

				return nil
			})

		require.NoError(t, f.svc.Update(actor("manager"), dto.UpdateOfferRequest{Code: strPtr("SUMMER20")}, "x-1"))
		f.expectEvicted(t, "offer:get:x-1", "offer:gets"+constant.Asterix, "offer:count"+constant.Asterix)
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
		f.expectEvicted(t, "offer:get:x-1")
	})
}

func TestValidityPeriod(t *testing.T) {
	t.Run("create rejects an inverted period before the store", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(actor("manager"), dto.CreateOfferRequest{
			Title:      "Backwards",
			ValidFrom:  strPtr("2026-06-30"),
			ValidUntil: strPtr("2026-05-01"),
		})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("update checks against the stored start", func(t *testing.T) {
		f := newFixture(t)
		from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Offer{ID: "x-1", ValidFrom: &from}, nil)

		err := f.svc.Update(actor("manager"), dto.UpdateOfferRequest{ValidUntil: strPtr("2026-05-15")}, "x-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("single day offer", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(actor("manager"), dto.CreateOfferRequest{
			Title:      "Flash sale",
			ValidFrom:  strPtr("2026-07-01"),
			ValidUntil: strPtr("2026-07-01"),
		})

		require.NoError(t, err)
	})
}
