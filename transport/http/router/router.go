package router

import (
	"github.com/go-chi/chi/v5"

	"cleanbook/internal/handlers/admin"
	"cleanbook/internal/handlers/auth"
	"cleanbook/internal/handlers/booking"
	"cleanbook/internal/handlers/catalog"
	"cleanbook/internal/handlers/payment"
	"cleanbook/internal/handlers/review"
	"cleanbook/internal/handlers/user"
)

type DomainHandlers struct {
	Auth    auth.Handler
	User    user.Handler
	Catalog catalog.Handler
	Booking booking.Handler
	Payment payment.Handler
	Review  review.Handler
	Admin   admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Admin.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
