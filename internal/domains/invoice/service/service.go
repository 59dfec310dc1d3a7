package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	hotelModel "hotel/internal/domains/hotel/model"
	hotelRepository "hotel/internal/domains/hotel/repository"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/renderer"
	"hotel/internal/domains/invoice/repository"
	reservationModel "hotel/internal/domains/reservation/model"
	reservationRepository "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Invoice interface {
	// Generate renders the invoice of a reservation. The invoice row is
	// written, and the PDF archived, only the first time.
	Generate(ctx context.Context, reservationID string) (dto.InvoiceFile, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
}

type serviceImpl struct {
	repo            repository.Invoice
	reservationRepo reservationRepository.Reservation
	roomRepo        roomRepository.Room
	hotelRepo       hotelRepository.Hotel
	storage         s3.S3
	cfg             *config.Config
	otel            otel.Otel
}

func New(
	repo repository.Invoice,
	reservationRepo reservationRepository.Reservation,
	roomRepo roomRepository.Room,
	hotelRepo hotelRepository.Hotel,
	storage s3.S3,
	cfg *config.Config,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		hotelRepo:       hotelRepo,
		storage:         storage,
		cfg:             cfg,
		otel:            otel,
	}
}

func (s *serviceImpl) Generate(ctx context.Context, reservationID string) (res dto.InvoiceFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Generate")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.Status == reservationModel.StatusCancelled {
		return res, failure.Conflict("a cancelled reservation has no invoice") // nolint:wrapcheck
	}

	existing, err := s.repo.Get(ctx, shared.FilterByID(reservationID, model.FieldReservationID, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	doc, err := s.document(ctx, reservation, existing)
	if err != nil {
		return res, err
	}

	content, err := renderer.Render(doc)
	if err != nil {
		log.Error().Err(err).Str("reservation", reservationID).Msg("failed to render invoice")

		return res, fmt.Errorf("failed to render invoice: %w", err)
	}

	res = dto.InvoiceFile{FileName: doc.FileName(), Content: content}

	if existing.ID != constant.Empty {
		return res, nil
	}

	res.Created, err = s.record(ctx, reservation, doc, content)
	if err != nil {
		return res, err
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	invoices, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(invoices, total, params.Limit)

	return res, nil
}

// document gathers what the invoice prints. An existing invoice keeps its
// number and issue date so every download renders the same document.
func (s *serviceImpl) document(ctx context.Context, reservation reservationModel.Reservation, existing model.Invoice) (model.Document, error) {
	issuedAt := timezone.Now()
	if existing.ID != constant.Empty {
		issuedAt = existing.IssuedAt
	}

	doc := model.Document{
		Number:     model.Number(reservation.ID, issuedAt),
		IssuedAt:   issuedAt,
		HotelName:  s.cfg.App.Name,
		GuestName:  reservation.GuestName,
		GuestPhone: reservation.GuestPhone,
		GuestEmail: reservation.GuestEmail,
		CheckIn:    reservation.CheckIn,
		CheckOut:   reservation.CheckOut,
		RoomNumber: roomModel.UnassignedLabel,
		Nights:     max(reservationModel.Nights(reservation.CheckIn, reservation.CheckOut), 0),
		Total:      reservation.TotalAmount,
	}

	if existing.ID != constant.Empty {
		doc.Number = existing.InvoiceNumber
	}

	hotelID := reservation.HotelID

	if reservation.RoomID != nil {
		room, err := s.roomRepo.Get(ctx, shared.FilterByID(*reservation.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return doc, fmt.Errorf("failed to get reservation room: %w", err)
		}

		if room.ID != constant.Empty {
			doc.RoomNumber = room.Number
			doc.RoomType = room.Type
			doc.Rate = room.Price

			if hotelID == nil {
				hotelID = room.HotelID
			}
		}
	}

	if hotelID == nil {
		return doc, nil
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(*hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		return doc, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID != constant.Empty {
		doc.HotelName = hotel.Name
		doc.HotelAddress = hotel.Address
		doc.HotelPhone = hotel.Phone
		doc.HotelEmail = hotel.Email
	}

	return doc, nil
}

// record archives the PDF and writes the invoice row. A failed archive
// leaves the row without a file URL rather than failing the download.
func (s *serviceImpl) record(ctx context.Context, reservation reservationModel.Reservation, doc model.Document, content []byte) (bool, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	url, err := s.storage.UploadFileBytes(ctx, constant.Empty, s.cfg.External.S3.InvoiceDir, doc.FileName(), constant.ContentTypePDF, content)
	if err != nil {
		log.Warn().Err(err).Str("invoice", doc.Number).Msg("failed to archive invoice")

		url = constant.Empty
	}

	invoice := model.Invoice{
		ID:            uuid.NewString(),
		ReservationID: reservation.ID,
		InvoiceNumber: doc.Number,
		Amount:        doc.Total,
		FileURL:       url,
		IssuedAt:      doc.IssuedAt,
		Metadata:      gModel.CreatedBy(user, doc.IssuedAt),
	}

	inserted, err := s.repo.InsertIfAbsent(ctx, invoice)
	if err != nil {
		log.Error().Err(err).Str("reservation", reservation.ID).Msg("failed to record invoice")

		return false, fmt.Errorf("failed to record invoice: %w", err)
	}

	return inserted, nil
}
