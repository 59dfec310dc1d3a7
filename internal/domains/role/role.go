package role

//go:generate go run go.uber.org/mock/mockgen -source=./role.go -destination=./mocks/role_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"hotel/infras/otel"
	staffModel "hotel/internal/domains/staff/model"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared"
	"hotel/shared/constant"
)

// StaffRoleManager is the staff table role that grants owner access.
const StaffRoleManager = "Manager"

var vocabulary = []string{constant.RoleOwner, constant.RoleStaff, constant.RoleCustomer}

// Identity is an authenticated user as seen by the identity provider.
type Identity struct {
	UserID        string
	MetadataRoles []string
}

type Resolver interface {
	// Resolve returns the coarse roles of identity. The result is never empty.
	Resolve(ctx context.Context, identity Identity) ([]string, error)
}

type resolverImpl struct {
	staff staffRepo.Staff
	otel  otel.Otel
}

func New(staff staffRepo.Staff, otel otel.Otel) Resolver {
	return &resolverImpl{
		staff: staff,
		otel:  otel,
	}
}

func (r *resolverImpl) Resolve(ctx context.Context, identity Identity) (roles []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".role.Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if roles = FromMetadata(identity.MetadataRoles); len(roles) > 0 {
		return roles, nil
	}

	if identity.UserID == constant.Empty {
		return []string{constant.RoleCustomer}, nil
	}

	staff, err := r.staff.Get(ctx, shared.FilterByID(identity.UserID, staffModel.FieldUserID, staffModel.TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to look up staff role: %w", err)
	}

	if staff.ID == constant.Empty || !staff.Active {
		return []string{constant.RoleCustomer}, nil
	}

	return FromStaffRole(staff.Role), nil
}

// FromMetadata keeps the known roles of metadata in their original order,
// dropping duplicates.
func FromMetadata(metadata []string) []string {
	roles := make([]string, 0, len(metadata))

	for _, role := range metadata {
		if slices.Contains(vocabulary, role) && !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}

	return roles
}

// FromStaffRole maps a staff table role string to coarse roles. Only the
// exact value Manager grants owner.
func FromStaffRole(staffRole string) []string {
	switch {
	case staffRole == StaffRoleManager:
		return []string{constant.RoleOwner}
	case strings.TrimSpace(staffRole) != constant.Empty:
		return []string{constant.RoleStaff}
	default:
		return []string{constant.RoleCustomer}
	}
}

// HasAny reports whether roles grants at least one of allowed. An empty
// allowed list grants everyone.
func HasAny(roles []string, allowed ...string) bool {
	if len(allowed) == 0 {
		return true
	}

	for _, role := range roles {
		if slices.Contains(allowed, role) {
			return true
		}
	}

	return false
}

// IsAdmin reports whether roles may use the back office.
func IsAdmin(roles []string) bool {
	return HasAny(roles, constant.RoleOwner, constant.RoleStaff)
}
