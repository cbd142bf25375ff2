// Package main runs the NivuGate reservation and check-in server.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nivusoft/nivugate/internal/config"
	"github.com/nivusoft/nivugate/internal/database"
	"github.com/nivusoft/nivugate/internal/handler"
	"github.com/nivusoft/nivugate/internal/middleware"
	"github.com/nivusoft/nivugate/internal/notify"
	"github.com/nivusoft/nivugate/internal/queue"
	"github.com/nivusoft/nivugate/internal/repository"
	"github.com/nivusoft/nivugate/internal/router"
	"github.com/nivusoft/nivugate/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting disabled")
	}

	eventRepo := repository.NewEventRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	operatorRepo := repository.NewOperatorRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	svc := service.NewReservationService(eventRepo, reservationRepo, logger)
	svc.BaseURL = cfg.PublicBaseURL
	if cfg.MailHost != "" {
		mailer, err := notify.NewSMTPMailer(notify.MailConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUser,
			Password: cfg.MailPass,
			Sender:   cfg.MailSender,
		})
		if err != nil {
			logger.Fatal("configure mailer", zap.Error(err))
		}
		svc.Dispatcher = mailer
	} else {
		logger.Warn("mail disabled, reservations will be created without confirmation emails")
	}
	if cfg.QRServiceURL != "" {
		svc.QR = notify.NewHTTPQRRenderer(cfg.QRServiceURL, cfg.QRSize)
	}
	if pub := queue.NewPublisher(cfg.AMQPURL, logger); pub != nil {
		svc.Publisher = pub
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, operatorRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(svc), limit)
	router.RegisterGate(e, handler.NewCheckinHandler(svc), cfg.JWTSecret, limit)
	router.RegisterAdmin(e, handler.NewAdminEventHandler(eventRepo), handler.NewAdminReservationHandler(svc), cfg.JWTSecret)

	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartAuditConsumer(cfg.AMQPURL, logger); err != nil {
				logger.Warn("audit consumer stopped", zap.Error(err))
			}
		}()
	}

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger() *zap.Logger {
	if os.Getenv("APP_ENV") == "prod" {
		l, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return l
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}
