package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/handler"
	authHandler "github.com/careops/hospital-api/internal/handler/auth"
	bookingHandler "github.com/careops/hospital-api/internal/handler/booking"
	doctorHandler "github.com/careops/hospital-api/internal/handler/doctor"
	medicineHandler "github.com/careops/hospital-api/internal/handler/medicine"
	paymentHandler "github.com/careops/hospital-api/internal/handler/payment"
	statsHandler "github.com/careops/hospital-api/internal/handler/stats"
	userHandler "github.com/careops/hospital-api/internal/handler/user"
	"github.com/careops/hospital-api/internal/middleware"
	"github.com/careops/hospital-api/internal/repository/postgres"
	"github.com/careops/hospital-api/internal/router"
	authService "github.com/careops/hospital-api/internal/service/auth"
	"github.com/careops/hospital-api/internal/service/authz"
	bookingService "github.com/careops/hospital-api/internal/service/booking"
	"github.com/careops/hospital-api/internal/service/directory"
	eventService "github.com/careops/hospital-api/internal/service/event"
	paymentService "github.com/careops/hospital-api/internal/service/payment"
	statsService "github.com/careops/hospital-api/internal/service/stats"
	userService "github.com/careops/hospital-api/internal/service/user"
	"github.com/careops/hospital-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	authzSvc := authz.NewService()
	eventSvc := eventService.NewService(outboxRepo)
	directorySvc := directory.NewService(doctorRepo, directory.Config{
		CacheTTL:        time.Duration(cfg.Directory.CacheTTLMinutes) * time.Minute,
		CleanupInterval: 15 * time.Minute,
	})
	bookingSvc := bookingService.NewService(bookingRepo, directorySvc, authzSvc, eventSvc)
	paymentSvc := paymentService.NewService(paymentRepo, authzSvc, eventSvc)
	statsSvc := statsService.NewService(statsRepo, authzSvc)
	userSvc := userService.NewService(userRepo, authzSvc)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	authSvc := authService.NewService(userRepo, hasher, cfg.JWT)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc, authzSvc)
	h := handler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		h,
		authHandler.NewHandler(authSvc),
		bookingHandler.NewHandler(bookingSvc),
		paymentHandler.NewHandler(paymentSvc),
		doctorHandler.NewHandler(directorySvc),
		statsHandler.NewHandler(statsSvc),
		userHandler.NewHandler(userSvc),
		medicineHandler.NewHandler(medicineRepo),
		router.Config{
			RateLimit:  rate.Limit(cfg.Server.RatePerSecond),
			RateBurst:  cfg.Server.RateBurst,
			CORSConfig: middleware.DefaultCORSConfig(),
			Timeout:    time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
