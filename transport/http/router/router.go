package router

import (
	"bms/internal/handlers/account"
	"bms/internal/handlers/accountrole"
	"bms/internal/handlers/auth"
	"bms/internal/handlers/booking"
	"bms/internal/handlers/education"
	"bms/internal/handlers/employee"
	"bms/internal/handlers/role"
	"bms/internal/handlers/room"
	"bms/internal/handlers/university"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	Booking     booking.Handler
	Employee    employee.Handler
	Account     account.Handler
	Role        role.Handler
	AccountRole accountrole.Handler
	Education   education.Handler
	University  university.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Account.Router(routerGroup)
		r.DomainHandlers.Role.Router(routerGroup)
		r.DomainHandlers.AccountRole.Router(routerGroup)
		r.DomainHandlers.Education.Router(routerGroup)
		r.DomainHandlers.University.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
