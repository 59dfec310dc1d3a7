package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/notification/model"
	staffModel "hotel/internal/domains/staff/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/lib/pq"
)

type DeviceToken interface {
	Insert(ctx context.Context, model model.DeviceToken) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DeviceToken, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DeviceToken, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Tokens returns every registered token.
	Tokens(ctx context.Context) ([]string, error)
	// StaffTokens returns the tokens of users linked to an active staff
	// record or carrying the owner or staff role.
	StaffTokens(ctx context.Context) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.DeviceToken]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) DeviceToken {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.DeviceToken](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Tokens(ctx context.Context) (tokens []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".device.Tokens")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s", model.FieldToken, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &tokens, query); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get device tokens: %w", err)
	}

	return tokens, nil
}

func (r *repositoryImpl) StaffTokens(ctx context.Context) (tokens []string, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".device.StaffTokens")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`SELECT DISTINCT d.%[1]s FROM %[2]s d
		LEFT JOIN %[3]s s ON s.%[4]s = d.%[5]s AND s.%[6]s
		LEFT JOIN %[7]s u ON u.%[8]s = d.%[5]s
		WHERE s.%[10]s IS NOT NULL OR u.%[9]s && $1`,
		model.FieldToken, model.TableName,
		staffModel.TableName, staffModel.FieldUserID, model.FieldUserID, staffModel.FieldActive,
		userModel.TableName, userModel.FieldID, userModel.FieldRoles, staffModel.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &tokens, query, pq.Array([]string{constant.RoleOwner, constant.RoleStaff})); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get staff device tokens: %w", err)
	}

	return tokens, nil
}
