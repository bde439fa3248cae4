package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/car-rental/internal/http/middleware"
	"github.com/diagnosis/car-rental/internal/http/router"
	"github.com/diagnosis/car-rental/internal/platform/cache"
	"github.com/diagnosis/car-rental/internal/platform/mailer"
	"github.com/diagnosis/car-rental/internal/platform/payments"
	"github.com/diagnosis/car-rental/internal/repo/postgres"
	"github.com/diagnosis/car-rental/internal/service"
	"github.com/diagnosis/car-rental/pkg/config"
	"github.com/diagnosis/car-rental/pkg/database"
	"github.com/diagnosis/car-rental/pkg/events"
	"github.com/diagnosis/car-rental/pkg/logger"
	mw "github.com/diagnosis/car-rental/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		// Optional Redis: rate limiting and idempotency records.
		var rdb redis.Cmdable
		var idempotency mw.IdempotencyStore
		if cfg.Redis.URL != "" {
			client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer client.Close()
			rdb = client
			idempotency = cache.NewIdempotencyStore(client)
		} else {
			logger.Warn("REDIS_URL not set; rate limiting disabled, idempotency kept in Postgres")
			keys := postgres.NewIdempotencyRepo(pool)
			idempotency = keys
			go purgeIdempotencyKeys(ctx, keys)
		}

		var publisher events.Publisher = events.NopPublisher{}
		if cfg.NATS.URL != "" {
			nc, err := events.NewNATSPublisher(cfg.NATS.URL)
			if err != nil {
				return fmt.Errorf("connect nats: %w", err)
			}
			publisher = nc
		}
		defer publisher.Close()

		var gateway payments.Gateway
		if cfg.Stripe.SecretKey != "" {
			gateway = payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Currency)
		} else {
			logger.Warn("STRIPE_SECRET_KEY not set; card payments are recorded without a charge")
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		mw.MustRegisterMetrics(registry)

		limiter := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Requests:  cfg.RateLimit.Requests,
			Window:    cfg.RateLimit.Window,
			KeyPrefix: "rl:auth:",
		})

		mail, err := newMailService(cfg.Email)
		if err != nil {
			return fmt.Errorf("configure mailer: %w", err)
		}

		customersRepo := postgres.NewCustomersRepo(pool)
		customers := service.NewCustomerService(customersRepo, mail, publisher, service.CustomerOptions{
			JWTSecret:           cfg.Auth.JWTSecret,
			AccessTokenTTL:      cfg.Auth.AccessTokenTTL,
			VerificationCodeTTL: cfg.Auth.VerificationCodeTTL,
		})

		handler := router.New(router.Deps{
			JWTSecret:    cfg.Auth.JWTSecret,
			Customers:    customers,
			CustomerRepo: customersRepo,
			Cars:         postgres.NewCarsRepo(pool),
			Locations:    postgres.NewLocationsRepo(pool),
			Bookings:     postgres.NewBookingsRepo(pool),
			Reservations: postgres.NewReservationsRepo(pool),
			Payments:     postgres.NewPaymentsRepo(pool),
			Maintenance:  postgres.NewMaintenanceRepo(pool),
			Insurance:    postgres.NewInsuranceRepo(pool),
			Events:       publisher,
			Gateway:      gateway,
			Idempotency:  idempotency,
			AuthLimiter:  limiter.Middleware(),
			Metrics:      registry,
		})

		srv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Starting car rental API", "port", cfg.Server.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			logger.Info("Shutting down car rental API...")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
			return err
		}
		return nil
	},
}

func newMailService(cfg config.EmailConfig) (mailer.Service, error) {
	var sender mailer.Sender
	switch {
	case cfg.DevMode:
		sender = mailer.NewDevMailer()
	case cfg.MailerSendKey != "":
		ms, err := mailer.NewMailerSendSender(cfg.MailerSendKey, cfg.FromName, cfg.FromEmail)
		if err != nil {
			return nil, err
		}
		sender = ms
	default:
		sender = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.FromEmail, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPUseTLS)
	}
	return mailer.NewService(sender, cfg.FromName), nil
}

func purgeIdempotencyKeys(ctx context.Context, keys postgres.IdempotencyRepo) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := keys.CleanupExpired(ctx)
			if err != nil {
				logger.Warn("Idempotency cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("Idempotency keys purged", "count", n)
			}
		}
	}
}
