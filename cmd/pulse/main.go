package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"pulse/config"
	"pulse/internal/delivery"
	"pulse/internal/delivery/http"
	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/router/handler"
	"pulse/internal/domain/service"
	"pulse/internal/infra/auth"
	"pulse/internal/infra/cache"
	logs "pulse/internal/infra/log"
	"pulse/internal/infra/notification"
	"pulse/internal/infra/persistence/postgres"
	"pulse/internal/infra/pubsub"
	"pulse/internal/infra/ratelimit"
	"pulse/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		cache.Module,
		ratelimit.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionRepository,
			postgres.NewCustomerRepository,
			postgres.NewProductRepository,
			postgres.NewSupplierRepository,
			postgres.NewAlertRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newFirebaseService,
		),
	)
}

// newFirebaseService creates a Firebase service with dependency injection
func newFirebaseService(ctx context.Context, cfg *config.Config) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return nil, nil // Firebase is optional
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewFraudService,
			impl.NewCustomerAnalyticsService,
			impl.NewInventoryService,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewTimingMiddleware,
			middleware.NewCacheMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewFraudHandler,
			handler.NewAnalyticsHandler,
			handler.NewInventoryHandler,
			handler.NewCacheHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
