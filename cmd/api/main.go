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

	"github.com/clinicagenda/clinic-api/internal/config"
	"github.com/clinicagenda/clinic-api/internal/handler"
	appointmentHandler "github.com/clinicagenda/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicagenda/clinic-api/internal/handler/auth"
	clinicHandler "github.com/clinicagenda/clinic-api/internal/handler/clinic"
	doctorHandler "github.com/clinicagenda/clinic-api/internal/handler/doctor"
	patientHandler "github.com/clinicagenda/clinic-api/internal/handler/patient"
	"github.com/clinicagenda/clinic-api/internal/middleware"
	"github.com/clinicagenda/clinic-api/internal/repository/postgres"
	"github.com/clinicagenda/clinic-api/internal/router"
	appointmentService "github.com/clinicagenda/clinic-api/internal/service/appointment"
	authService "github.com/clinicagenda/clinic-api/internal/service/auth"
	clinicService "github.com/clinicagenda/clinic-api/internal/service/clinic"
	doctorService "github.com/clinicagenda/clinic-api/internal/service/doctor"
	patientService "github.com/clinicagenda/clinic-api/internal/service/patient"
	pkgauth "github.com/clinicagenda/clinic-api/pkg/auth"
	"github.com/clinicagenda/clinic-api/pkg/event"
	"github.com/clinicagenda/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Server.Timezone).Msg("invalid timezone")
	}

	if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clinicRepo := postgres.NewClinicRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	// Services
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(12)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	clinicSvc := clinicService.NewService(clinicRepo)
	doctorSvc := doctorService.NewService(doctorRepo, loc)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, patientRepo)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Handlers
	events := event.NewRecorder(outboxRepo)
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc, authSvc, events)
	doctorH := doctorHandler.NewHandler(doctorSvc, events)
	patientH := patientHandler.NewHandler(patientSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, events)

	r := router.NewRouter(
		authMiddleware,
		authH,
		clinicH,
		doctorH,
		patientH,
		appointmentH,
		h,
		router.RouterConfig{
			RateLimitRPS:  cfg.Server.RateLimitRPS,
			RateBurst:     cfg.Server.RateBurst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "clinic_api",
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
			log.Fatal().Err(err).Msg("server error")
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
