package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"strings"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
)

// User stores staff and guest accounts. Emails are unique case-insensitively.
type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type accounts struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &accounts{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Insert lowercases the email so lookups by address match regardless of how
// the guest typed it. A concurrent registration of the same address
// surfaces as a conflict.
func (r *accounts) Insert(ctx context.Context, user model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	return failure.ConflictOnDuplicate(r.Repository.Insert(ctx, user), "email already registered") // nolint:wrapcheck
}

func (r *accounts) Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) error {
	if email, ok := fields[model.FieldEmail].(string); ok {
		fields[model.FieldEmail] = strings.ToLower(strings.TrimSpace(email))
	}

	return failure.ConflictOnDuplicate(r.Repository.Update(ctx, fields, filter), "email already registered") // nolint:wrapcheck
}
