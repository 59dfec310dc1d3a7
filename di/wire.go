//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/cloudinary"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/push"
	"hotel/infras/realtime"
	"hotel/infras/redis"
	"hotel/infras/s3"
	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	blogRepository "hotel/internal/domains/blog/repository"
	blogService "hotel/internal/domains/blog/service"
	hotelRepository "hotel/internal/domains/hotel/repository"
	hotelService "hotel/internal/domains/hotel/service"
	hotelserviceRepository "hotel/internal/domains/hotelservice/repository"
	hotelserviceService "hotel/internal/domains/hotelservice/service"
	invoiceRepository "hotel/internal/domains/invoice/repository"
	invoiceService "hotel/internal/domains/invoice/service"
	mediaService "hotel/internal/domains/media/service"
	notificationRepository "hotel/internal/domains/notification/repository"
	notificationService "hotel/internal/domains/notification/service"
	offerRepository "hotel/internal/domains/offer/repository"
	offerService "hotel/internal/domains/offer/service"
	packageRepository "hotel/internal/domains/packagedeal/repository"
	packageService "hotel/internal/domains/packagedeal/service"
	reservationRepository "hotel/internal/domains/reservation/repository"
	reservationService "hotel/internal/domains/reservation/service"
	"hotel/internal/domains/role"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepository "hotel/internal/domains/staff/repository"
	staffService "hotel/internal/domains/staff/service"
	testimonialRepository "hotel/internal/domains/testimonial/repository"
	testimonialService "hotel/internal/domains/testimonial/service"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	"hotel/internal/feed"
	authHandler "hotel/internal/handlers/auth"
	availabilityHandler "hotel/internal/handlers/availability"
	blogHandler "hotel/internal/handlers/blog"
	feedHandler "hotel/internal/handlers/feed"
	hotelHandler "hotel/internal/handlers/hotel"
	hotelserviceHandler "hotel/internal/handlers/hotelservice"
	invoiceHandler "hotel/internal/handlers/invoice"
	mediaHandler "hotel/internal/handlers/media"
	notificationHandler "hotel/internal/handlers/notification"
	offerHandler "hotel/internal/handlers/offer"
	packageHandler "hotel/internal/handlers/packagedeal"
	realtimeHandler "hotel/internal/handlers/realtime"
	reservationHandler "hotel/internal/handlers/reservation"
	roomHandler "hotel/internal/handlers/room"
	staffHandler "hotel/internal/handlers/staff"
	testimonialHandler "hotel/internal/handlers/testimonial"
	userHandler "hotel/internal/handlers/user"
	"hotel/internal/worker"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"
	"github.com/olahol/melody"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	cloudinary.New,
	push.New,
	realtime.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocations), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	hotelRepository.New,
	roomRepository.New,
	reservationRepository.New,
	invoiceRepository.New,
	packageRepository.New,
	hotelserviceRepository.New,
	offerRepository.New,
	testimonialRepository.New,
	blogRepository.New,
	staffRepository.New,
	notificationRepository.New,
)

var domains = wire.NewSet(
	role.New,
	authService.New,
	userService.New,
	hotelService.New,
	roomService.New,
	availabilityService.New,
	reservationService.New,
	invoiceService.New,
	packageService.New,
	hotelserviceService.New,
	offerService.New,
	testimonialService.New,
	blogService.New,
	staffService.New,
	mediaService.New,
	notificationService.New,
)

var feeds = wire.NewSet(
	wire.Struct(new(feed.Services), "*"),
	feed.NewScheduler,
	feed.NewRegisteredHub,
	melody.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	roomHandler.New,
	availabilityHandler.New,
	reservationHandler.New,
	invoiceHandler.New,
	packageHandler.New,
	hotelserviceHandler.New,
	offerHandler.New,
	testimonialHandler.New,
	blogHandler.New,
	staffHandler.New,
	mediaHandler.New,
	notificationHandler.New,
	feedHandler.New,
	realtimeHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		feeds,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		kafka.New,
		push.New,
		notificationRepository.New,
		notificationService.New,
		worker.New,
	)

	return &worker.Worker{}
}
