package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/config"
	"github.com/iliyamo/storefront/internal/database"
	"github.com/iliyamo/storefront/internal/handler"
	"github.com/iliyamo/storefront/internal/logging"
	"github.com/iliyamo/storefront/internal/mail"
	"github.com/iliyamo/storefront/internal/middleware"
	"github.com/iliyamo/storefront/internal/queue"
	"github.com/iliyamo/storefront/internal/repository"
	"github.com/iliyamo/storefront/internal/resolver"
	"github.com/iliyamo/storefront/internal/router"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	db, err := database.Open(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(cfg.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	sessions, err := auth.NewSessionService(cfg.Secret, cfg.SessionTTL, auth.SystemClock{})
	if err != nil {
		return err
	}
	users := repository.NewUserRepo(db)

	var sender mail.Sender
	if cfg.RabbitMQURL != "" {
		sender = mail.NewQueueSender(cfg.RabbitMQURL, cfg.MailFrom, logger)
		go func() {
			err := queue.StartMailConsumer(ctx, cfg.RabbitMQURL, &queue.OutboxDeliverer{Dir: cfg.MailOutbox}, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("mail consumer stopped", "err", err)
			}
		}()
	} else {
		logger.Warn("RABBITMQ_URL not set; password reset emails will not be sent")
	}

	r := resolver.New(resolver.Deps{
		Users:       users,
		Items:       repository.NewItemRepo(db),
		Orders:      repository.NewOrderRepo(db),
		Hasher:      auth.NewHasher(cfg.BcryptCost),
		Sessions:    sessions,
		Resets:      auth.NewResetService(users, auth.SystemClock{}, cfg.ResetTokenTTL),
		Mail:        sender,
		FrontendURL: cfg.FrontendURL,
		Logger:      logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "err", v.Error)
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", slog.Group("http", attrs...))
			return nil
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(handler.WithLogger(logger))
	e.Use(middleware.Session(sessions, users, logger))

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e,
		handler.NewAuthHandler(r, handler.CookieOptions{MaxAge: cfg.SessionTTL, Secure: !cfg.IsDev()}),
		middleware.NewTokenBucket(cfg.RateLimit, rdb))
	router.RegisterItems(e, handler.NewItemHandler(r),
		middleware.NewRedisCache(cfg.Cache, rdb),
		middleware.NewCachePurger(cfg.Cache, rdb))
	router.RegisterAccounts(e, handler.NewUserHandler(r), handler.NewOrderHandler(r))

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
