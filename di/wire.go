//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"cleanbook/config"
	"cleanbook/infras/jwt"
	"cleanbook/infras/kafka"
	"cleanbook/infras/mailer"
	"cleanbook/infras/otel"
	"cleanbook/infras/postgres"
	"cleanbook/infras/redis"
	"cleanbook/infras/s3"
	"cleanbook/infras/toss"
	authService "cleanbook/internal/domains/auth/service"
	bookingModel "cleanbook/internal/domains/booking/model"
	bookingRepository "cleanbook/internal/domains/booking/repository"
	bookingService "cleanbook/internal/domains/booking/service"
	catalogRepository "cleanbook/internal/domains/catalog/repository"
	catalogService "cleanbook/internal/domains/catalog/service"
	notificationService "cleanbook/internal/domains/notification/service"
	paymentService "cleanbook/internal/domains/payment/service"
	reportRepository "cleanbook/internal/domains/report/repository"
	reportService "cleanbook/internal/domains/report/service"
	reviewRepository "cleanbook/internal/domains/review/repository"
	reviewService "cleanbook/internal/domains/review/service"
	userRepository "cleanbook/internal/domains/user/repository"
	userService "cleanbook/internal/domains/user/service"
	adminHandler "cleanbook/internal/handlers/admin"
	authHandler "cleanbook/internal/handlers/auth"
	bookingHandler "cleanbook/internal/handlers/booking"
	catalogHandler "cleanbook/internal/handlers/catalog"
	paymentHandler "cleanbook/internal/handlers/payment"
	reviewHandler "cleanbook/internal/handlers/review"
	userHandler "cleanbook/internal/handlers/user"
	"cleanbook/permissions"
	"cleanbook/shared/cache"
	"cleanbook/transport/http"
	"cleanbook/transport/http/middleware"
	"cleanbook/transport/http/router"
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	toss.New,
	mailer.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userRepository.NewAddress,
	userRepository.NewFavorite,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var bookingDomain = wire.NewSet(
	bookingModel.NewNumberGenerator,
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	userDomain,
	authDomain,
	catalogDomain,
	bookingDomain,
	paymentDomain,
	reviewDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	catalogHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	reviewHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService(cfg *config.Config) *http.HTTP {
	wire.Build(
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
