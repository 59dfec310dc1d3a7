package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	invoiceModel "hotel/internal/domains/invoice/model"
	reservationModel "hotel/internal/domains/reservation/model"
	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertBulk(ctx context.Context, models []model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// DeleteCascade removes the room together with the reservations that
	// reference it and their invoices, in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) DeleteCascade(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.DeleteCascade")
	defer scope.End()
	defer scope.TraceIfError(err)

	deleteInvoices := fmt.Sprintf(
		"DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)",
		invoiceModel.TableName, invoiceModel.FieldReservationID,
		reservationModel.FieldID, reservationModel.TableName, reservationModel.FieldRoomID,
	)
	deleteReservations := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", reservationModel.TableName, reservationModel.FieldRoomID)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, query := range []string{deleteInvoices, deleteReservations} {
			scope.SetAttribute(constant.OtelQueryAttributeKey, query)

			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				logger.ErrorWithStack(err)

				return fmt.Errorf("failed to delete room dependants: %w", err)
			}
		}

		return r.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	})
}
