package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/invoice/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Invoice interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Invoice, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Invoice, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// InsertIfAbsent writes the invoice unless the reservation already has
	// one and reports whether a row was written.
	InsertIfAbsent(ctx context.Context, invoice model.Invoice) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Invoice]
}

func New(db *postgres.Connection, otel otel.Otel) Invoice {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Invoice](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) InsertIfAbsent(ctx context.Context, invoice model.Invoice) (bool, error) {
	return r.Repository.InsertIfAbsent(ctx, model.FieldReservationID, invoice) //nolint:wrapcheck
}
