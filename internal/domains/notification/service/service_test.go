package service_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/push"
	pushMocks "hotel/infras/push/mocks"
	notificationMocks "hotel/internal/domains/notification/mocks"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	"hotel/internal/domains/notification/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Notification, *notificationMocks.MockDeviceToken, *pushMocks.MockPush) {
	ctrl := gomock.NewController(t)
	repo := notificationMocks.NewMockDeviceToken(ctrl)
	gateway := pushMocks.NewMockPush(ctrl)

	return service.New(repo, gateway, mocks.NewOtel()), repo, gateway
}

func userContext(userID string, roles ...string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRoles, roles)
}

func TestNotificationService_RegisterDevice(t *testing.T) {
	req := dto.RegisterDeviceRequest{Token: "ExponentPushToken[a]", Platform: "android"}

	t.Run("new token is inserted", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{}, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, device model.DeviceToken) error {
				assert.Equal(t, req.Token, device.Token)
				require.NotNil(t, device.UserID)
				assert.Equal(t, "user-1", *device.UserID)

				return nil
			})

		res, err := svc.RegisterDevice(userContext("user-1"), req)

		require.NoError(t, err)
		assert.Equal(t, req.Token, res.Token)
	})

	t.Run("known token moves to the current user", func(t *testing.T) {
		svc, repo, _ := newService(t)
		previous := "user-0"

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{ID: "d1", Token: req.Token, UserID: &previous}, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				owner, ok := fields[model.FieldUserID].(*string)
				require.True(t, ok)
				assert.Equal(t, "user-1", *owner)

				return nil
			})

		res, err := svc.RegisterDevice(userContext("user-1"), req)

		require.NoError(t, err)
		assert.Equal(t, "d1", res.ID)
	})
}

func TestNotificationService_UnregisterDevice(t *testing.T) {
	other := "user-2"

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *notificationMocks.MockDeviceToken)
		wantCode  int
	}{
		{
			name: "own device",
			ctx:  userContext("user-2", constant.RoleCustomer),
			setupMock: func(repo *notificationMocks.MockDeviceToken) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{ID: "d1", UserID: &other}, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "owner removes any device",
			ctx:  userContext("owner-1", constant.RoleOwner),
			setupMock: func(repo *notificationMocks.MockDeviceToken) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{ID: "d1", UserID: &other}, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "someone else's device",
			ctx:  userContext("user-3", constant.RoleStaff),
			setupMock: func(repo *notificationMocks.MockDeviceToken) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{ID: "d1", UserID: &other}, nil)
			},
			wantCode: 403,
		},
		{
			name: "unknown token",
			ctx:  userContext("user-2"),
			setupMock: func(repo *notificationMocks.MockDeviceToken) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.DeviceToken{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.UnregisterDevice(tt.ctx, "token")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestNotificationService_Broadcast(t *testing.T) {
	req := dto.BroadcastRequest{Title: "Pool closed", Body: "Maintenance until noon", Data: map[string]any{"screen": "news"}}

	t.Run("sends to every token and prunes unregistered ones", func(t *testing.T) {
		svc, repo, gateway := newService(t)

		repo.EXPECT().Tokens(gomock.Any()).Return([]string{"a", "b", "c"}, nil)
		gateway.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, messages []push.Message) (push.Result, error) {
				require.Len(t, messages, 3)
				assert.Equal(t, "a", messages[0].To)
				assert.Equal(t, req.Title, messages[0].Title)
				assert.Equal(t, req.Data, messages[2].Data)

				return push.Result{Batches: 1, Sent: 2, Failed: 1, InvalidTokens: []string{"b"}}, nil
			})
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Broadcast(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, dto.BroadcastResponse{Recipients: 3, Batches: 1, Sent: 2, Failed: 1, Pruned: 1}, res)
	})

	t.Run("staff audience", func(t *testing.T) {
		svc, repo, gateway := newService(t)
		staffReq := req
		staffReq.Audience = model.AudienceStaff

		repo.EXPECT().StaffTokens(gomock.Any()).Return([]string{"s"}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Len(1)).Return(push.Result{Batches: 1, Sent: 1}, nil)

		res, err := svc.Broadcast(context.Background(), staffReq)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Sent)
	})

	t.Run("no recipients sends nothing", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Tokens(gomock.Any()).Return(nil, nil)

		res, err := svc.Broadcast(context.Background(), req)

		require.NoError(t, err)
		assert.Zero(t, res.Recipients)
	})

	t.Run("partial failure is reported in the counts", func(t *testing.T) {
		svc, repo, gateway := newService(t)

		repo.EXPECT().Tokens(gomock.Any()).Return([]string{"a", "b"}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(push.Result{Batches: 2, Sent: 1, Failed: 1}, errors.New("batch 1: 502"))

		res, err := svc.Broadcast(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
	})

	t.Run("total failure is an error", func(t *testing.T) {
		svc, repo, gateway := newService(t)

		repo.EXPECT().Tokens(gomock.Any()).Return([]string{"a"}, nil)
		gateway.EXPECT().Send(gomock.Any(), gomock.Any()).Return(push.Result{Batches: 1, Failed: 1}, errors.New("batch 0: 502"))

		_, err := svc.Broadcast(context.Background(), req)

		assert.Error(t, err)
	})
}
