package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	invoiceModel "hotel/internal/domains/invoice/model"
	"hotel/internal/domains/reservation/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// InsertWithRoom inserts a reservation that already holds a room and sets
	// the room's stored status in the same transaction.
	InsertWithRoom(ctx context.Context, reservation model.Reservation, roomStatus string) error
	// AssignRoom links the room, confirms the reservation, stores the
	// recomputed total, books the room and releases any previous room, all in
	// one transaction.
	AssignRoom(ctx context.Context, assignment model.RoomAssignment) error
	// Transition changes the reservation status and the held room's stored
	// status in one transaction.
	Transition(ctx context.Context, transition model.Transition) error
	// DeleteCascade deletes the reservation and its invoice, releasing
	// releaseRoomID when it is not empty.
	DeleteCascade(ctx context.Context, id, releaseRoomID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	rooms gRepo.Repository[roomModel.Room]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		rooms:      gRepo.NewRepository[roomModel.Room](roomModel.EntityName, roomModel.TableName, roomModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) InsertWithRoom(ctx context.Context, reservation model.Reservation, roomStatus string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertWithRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	if reservation.RoomID == nil {
		return r.Insert(ctx, reservation)
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.InsertTx(ctx, tx, reservation); err != nil {
			return err
		}

		return r.setRoomStatus(ctx, tx, *reservation.RoomID, roomStatus, reservation.CreatedBy)
	})
}

func (r *repositoryImpl) AssignRoom(ctx context.Context, assignment model.RoomAssignment) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.AssignRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		fields := map[string]any{
			model.FieldRoomID:        assignment.RoomID,
			model.FieldStatus:        model.StatusConfirmed,
			model.FieldTotalAmount:   assignment.TotalAmount,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: assignment.User,
		}

		filter := shared.FilterByID(assignment.ReservationID, model.FieldID, model.TableName)
		if err := r.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		if assignment.PreviousRoomID != "" && assignment.PreviousRoomID != assignment.RoomID {
			if err := r.setRoomStatus(ctx, tx, assignment.PreviousRoomID, roomModel.StatusAvailable, assignment.User); err != nil {
				return err
			}
		}

		return r.setRoomStatus(ctx, tx, assignment.RoomID, roomModel.StatusBooked, assignment.User)
	})
}

func (r *repositoryImpl) Transition(ctx context.Context, transition model.Transition) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		fields := map[string]any{
			model.FieldStatus:        transition.Status,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: transition.User,
		}

		filter := shared.FilterByID(transition.ReservationID, model.FieldID, model.TableName)
		if err := r.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		if transition.RoomID == "" || transition.RoomStatus == "" {
			return nil
		}

		return r.setRoomStatus(ctx, tx, transition.RoomID, transition.RoomStatus, transition.User)
	})
}

func (r *repositoryImpl) DeleteCascade(ctx context.Context, id, releaseRoomID string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DeleteCascade")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	deleteInvoice := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", invoiceModel.TableName, invoiceModel.FieldReservationID)

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		scope.SetAttribute(constant.OtelQueryAttributeKey, deleteInvoice)

		if _, err := tx.ExecContext(ctx, deleteInvoice, id); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to delete reservation invoice: %w", err)
		}

		if err := r.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		if releaseRoomID == "" {
			return nil
		}

		return r.setRoomStatus(ctx, tx, releaseRoomID, roomModel.StatusAvailable, user)
	})
}

func (r *repositoryImpl) setRoomStatus(ctx context.Context, tx *sqlx.Tx, roomID, status, user string) error {
	fields := map[string]any{
		roomModel.FieldStatus:    status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	return r.rooms.UpdateTx(ctx, tx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)) //nolint:wrapcheck
}
