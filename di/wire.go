//go:build wireinject
// +build wireinject

package di

import (
	"bms/config"
	"bms/infras/jwt"
	"bms/infras/kafka"
	"bms/infras/otel"
	"bms/infras/postgres"
	"bms/infras/redis"
	"bms/infras/s3"
	"bms/infras/smtp"
	"bms/permissions"
	"bms/shared/cache"
	"bms/transport/http"
	"bms/transport/http/middleware"
	"bms/transport/http/router"

	accountRepository "bms/internal/domains/account/repository"
	accountService "bms/internal/domains/account/service"
	accountRoleRepository "bms/internal/domains/accountrole/repository"
	accountRoleService "bms/internal/domains/accountrole/service"
	"bms/internal/domains/auth/otp"
	authService "bms/internal/domains/auth/service"
	bookingRepository "bms/internal/domains/booking/repository"
	bookingService "bms/internal/domains/booking/service"
	educationRepository "bms/internal/domains/education/repository"
	educationService "bms/internal/domains/education/service"
	employeeRepository "bms/internal/domains/employee/repository"
	employeeService "bms/internal/domains/employee/service"
	notificationService "bms/internal/domains/notification/service"
	roleRepository "bms/internal/domains/role/repository"
	roleService "bms/internal/domains/role/service"
	roomRepository "bms/internal/domains/room/repository"
	roomService "bms/internal/domains/room/service"
	universityRepository "bms/internal/domains/university/repository"
	universityService "bms/internal/domains/university/service"

	accountHandler "bms/internal/handlers/account"
	accountRoleHandler "bms/internal/handlers/accountrole"
	authHandler "bms/internal/handlers/auth"
	bookingHandler "bms/internal/handlers/booking"
	educationHandler "bms/internal/handlers/education"
	employeeHandler "bms/internal/handlers/employee"
	roleHandler "bms/internal/handlers/role"
	roomHandler "bms/internal/handlers/room"
	universityHandler "bms/internal/handlers/university"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	smtp.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	roomRepository.New,
	bookingRepository.New,
	employeeRepository.New,
	accountRepository.New,
	roleRepository.New,
	accountRoleRepository.New,
	educationRepository.New,
	universityRepository.New,
)

var authDomain = wire.NewSet(
	wire.Struct(new(authService.Repositories), "*"),
	otp.NewFromConfig,
	notificationService.New,
	authService.New,
)

var domains = wire.NewSet(
	repositories,
	authDomain,
	roomService.New,
	bookingService.New,
	employeeService.New,
	accountService.New,
	roleService.New,
	accountRoleService.New,
	educationService.New,
	universityService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	employeeHandler.New,
	accountHandler.New,
	roleHandler.New,
	accountRoleHandler.New,
	educationHandler.New,
	universityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeMailer() *Mailer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		smtp.New,
		notificationService.NewDispatcher,
		wire.Struct(new(Mailer), "*"),
	)

	return &Mailer{}
}
