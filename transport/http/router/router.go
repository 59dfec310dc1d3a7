package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/blog"
	"hotel/internal/handlers/feed"
	"hotel/internal/handlers/hotel"
	"hotel/internal/handlers/hotelservice"
	"hotel/internal/handlers/invoice"
	"hotel/internal/handlers/media"
	"hotel/internal/handlers/notification"
	"hotel/internal/handlers/offer"
	"hotel/internal/handlers/packagedeal"
	"hotel/internal/handlers/realtime"
	"hotel/internal/handlers/reservation"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/staff"
	"hotel/internal/handlers/testimonial"
	"hotel/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Hotel        hotel.Handler
	Room         room.Handler
	Availability availability.Handler
	Reservation  reservation.Handler
	Invoice      invoice.Handler
	Package      packagedeal.Handler
	Service      hotelservice.Handler
	Offer        offer.Handler
	Testimonial  testimonial.Handler
	Blog         blog.Handler
	Staff        staff.Handler
	Media        media.Handler
	Notification notification.Handler
	Feed         feed.Handler
	Realtime     realtime.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Invoice.Router(routerGroup)
		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Service.Router(routerGroup)
		r.DomainHandlers.Offer.Router(routerGroup)
		r.DomainHandlers.Testimonial.Router(routerGroup)
		r.DomainHandlers.Blog.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Media.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Feed.Router(routerGroup)
		r.DomainHandlers.Realtime.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
