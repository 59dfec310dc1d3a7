package role_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	authDto "hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/role"
	staffMocks "hotel/internal/domains/staff/mocks"
	staffModel "hotel/internal/domains/staff/model"
	"hotel/shared/constant"
)

func TestResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStaffRepo := staffMocks.NewMockStaff(ctrl)
	resolver := role.New(mockStaffRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		identity  role.Identity
		setupMock func()
		want      []string
		wantErr   bool
	}{
		{
			name:     "metadata roles win and are filtered",
			identity: role.Identity{UserID: "u-1", MetadataRoles: []string{"owner", "admin", "staff", "owner"}},
			want:     []string{constant.RoleOwner, constant.RoleStaff},
		},
		{
			name:     "unknown metadata falls through to staff manager",
			identity: role.Identity{UserID: "u-2", MetadataRoles: []string{"superuser"}},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{ID: "s-1", Role: "Manager", Active: true}, nil)
			},
			want: []string{constant.RoleOwner},
		},
		{
			name:     "other staff role maps to staff",
			identity: role.Identity{UserID: "u-3"},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{ID: "s-2", Role: "Receptionist", Active: true}, nil)
			},
			want: []string{constant.RoleStaff},
		},
		{
			name:     "blank staff role is a customer",
			identity: role.Identity{UserID: "u-4"},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{ID: "s-3", Role: "  ", Active: true}, nil)
			},
			want: []string{constant.RoleCustomer},
		},
		{
			name:     "inactive manager is a customer",
			identity: role.Identity{UserID: "u-7"},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{ID: "s-4", Role: "Manager", Active: false}, nil)
			},
			want: []string{constant.RoleCustomer},
		},
		{
			name:     "no staff record is a customer",
			identity: role.Identity{UserID: "u-5"},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{}, nil)
			},
			want: []string{constant.RoleCustomer},
		},
		{
			name:     "anonymous identity skips the lookup",
			identity: role.Identity{},
			want:     []string{constant.RoleCustomer},
		},
		{
			name:     "lookup failure is reported",
			identity: role.Identity{UserID: "u-6"},
			setupMock: func() {
				mockStaffRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(staffModel.Staff{}, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			got, err := resolver.Resolve(context.Background(), tt.identity)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ResolveIsDeterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStaffRepo := staffMocks.NewMockStaff(ctrl)
	mockStaffRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(staffModel.Staff{ID: "s-1", Role: "Housekeeping", Active: true}, nil).
		Times(2)

	resolver := role.New(mockStaffRepo, mocks.NewOtel())
	identity := role.Identity{UserID: "u-1"}

	first, err := resolver.Resolve(context.Background(), identity)
	require.NoError(t, err)

	second, err := resolver.Resolve(context.Background(), identity)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolver_RegisteredUserWithManagerStaffRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := (&authDto.RegisterRequest{Email: "rina@hotel.test", Password: "password123"}).
		ToUserModel(constant.ContextGuest, "bcrypt-hash")

	mockStaffRepo := staffMocks.NewMockStaff(ctrl)
	mockStaffRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(staffModel.Staff{ID: "s-9", UserID: &user.ID, Role: role.StaffRoleManager, Active: true}, nil)

	resolver := role.New(mockStaffRepo, mocks.NewOtel())

	got, err := resolver.Resolve(context.Background(), role.Identity{UserID: user.ID, MetadataRoles: user.Roles})

	require.NoError(t, err)
	assert.Equal(t, []string{constant.RoleOwner}, got)
}

func TestFromStaffRole(t *testing.T) {
	assert.Equal(t, []string{constant.RoleOwner}, role.FromStaffRole("Manager"))
	assert.Equal(t, []string{constant.RoleStaff}, role.FromStaffRole("manager"))
	assert.Equal(t, []string{constant.RoleStaff}, role.FromStaffRole(" Manager "))
	assert.Equal(t, []string{constant.RoleStaff}, role.FromStaffRole("Chef"))
	assert.Equal(t, []string{constant.RoleCustomer}, role.FromStaffRole(""))
}

func TestHasAny(t *testing.T) {
	assert.True(t, role.HasAny([]string{constant.RoleStaff}, constant.RoleOwner, constant.RoleStaff))
	assert.False(t, role.HasAny([]string{constant.RoleCustomer}, constant.RoleOwner, constant.RoleStaff))
	assert.True(t, role.HasAny(nil))
	assert.True(t, role.IsAdmin([]string{constant.RoleOwner}))
	assert.False(t, role.IsAdmin([]string{constant.RoleCustomer}))
}
