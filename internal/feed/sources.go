package feed

import (
	"context"
	"fmt"
	"slices"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/realtime"
	availabilityService "hotel/internal/domains/availability/service"
	blogModel "hotel/internal/domains/blog/model"
	blogService "hotel/internal/domains/blog/service"
	hotelModel "hotel/internal/domains/hotel/model"
	hotelService "hotel/internal/domains/hotel/service"
	hotelserviceModel "hotel/internal/domains/hotelservice/model"
	hotelserviceService "hotel/internal/domains/hotelservice/service"
	offerModel "hotel/internal/domains/offer/model"
	offerService "hotel/internal/domains/offer/service"
	packageModel "hotel/internal/domains/packagedeal/model"
	packageService "hotel/internal/domains/packagedeal/service"
	reservationModel "hotel/internal/domains/reservation/model"
	reservationService "hotel/internal/domains/reservation/service"
	roomModel "hotel/internal/domains/room/model"
	roomService "hotel/internal/domains/room/service"
	staffModel "hotel/internal/domains/staff/model"
	staffService "hotel/internal/domains/staff/service"
	testimonialModel "hotel/internal/domains/testimonial/model"
	testimonialService "hotel/internal/domains/testimonial/service"

	"github.com/robfig/cron/v3"
)

const (
	FeedRooms            = "rooms"
	FeedReservations     = "reservations"
	FeedRoomAvailability = "room_availability"
	FeedHotels           = "hotels"
	FeedPackages         = "packages"
	FeedServices         = "services"
	FeedOffers           = "offers"
	FeedTestimonials     = "testimonials"
	FeedBlogs            = "blogs"
	FeedStaff            = "staff"
)

// Services are the list queries behind the registered feeds.
type Services struct {
	Rooms         roomService.Room
	Reservations  reservationService.Reservation
	Availability  availabilityService.Availability
	Hotels        hotelService.Hotel
	Packages      packageService.Package
	HotelServices hotelserviceService.Service
	Offers        offerService.Offer
	Testimonials  testimonialService.Testimonial
	Blogs         blogService.Blog
	Staff         staffService.Staff
}

func Sources(services Services) []Source {
	return []Source{
		{Name: FeedRooms, Tables: []string{roomModel.TableName}, Fetch: list(services.Rooms.List)},
		{Name: FeedReservations, Tables: []string{reservationModel.TableName, roomModel.TableName}, Fetch: list(services.Reservations.List)},
		{
			Name:   FeedRoomAvailability,
			Tables: []string{roomModel.TableName, reservationModel.TableName},
			Fetch: func(ctx context.Context) (any, error) {
				return services.Availability.GetAll(ctx, "") //nolint:wrapcheck
			},
		},
		{Name: FeedHotels, Tables: []string{hotelModel.TableName}, Fetch: list(services.Hotels.List)},
		{Name: FeedPackages, Tables: []string{packageModel.TableName}, Fetch: list(services.Packages.List)},
		{Name: FeedServices, Tables: []string{hotelserviceModel.TableName}, Fetch: list(services.HotelServices.List)},
		{Name: FeedOffers, Tables: []string{offerModel.TableName}, Fetch: list(services.Offers.List)},
		{Name: FeedTestimonials, Tables: []string{testimonialModel.TableName}, Fetch: list(services.Testimonials.List)},
		{Name: FeedBlogs, Tables: []string{blogModel.TableName}, Fetch: list(services.Blogs.List)},
		{Name: FeedStaff, Tables: []string{staffModel.TableName}, Fetch: list(services.Staff.List)},
	}
}

// NewRegisteredHub builds a hub serving every feed of services.
func NewRegisteredHub(listener realtime.Listener, scheduler *cron.Cron, services Services, cfg *config.Config, otel otel.Otel) (Hub, error) {
	hub := New(listener, scheduler, cfg, otel)

	if err := Register(hub, Sources(services)); err != nil {
		return nil, err
	}

	return hub, nil
}

// Register adds every source to the hub.
func Register(hub Hub, sources []Source) error {
	for _, source := range sources {
		if err := hub.Register(source); err != nil {
			return fmt.Errorf("failed to register feed: %w", err)
		}
	}

	return nil
}

func list[T any](fn func(ctx context.Context) ([]T, error)) Fetch {
	return func(ctx context.Context) (any, error) {
		return fn(ctx) //nolint:wrapcheck
	}
}

var privateFeeds = []string{FeedReservations, FeedStaff}

// Private reports whether a feed carries back-office rows that only owners
// and staff may read.
func Private(name string) bool {
	return slices.Contains(privateFeeds, name)
}
