package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pinehaven/pinehaven-api/internal/config"
	"github.com/pinehaven/pinehaven-api/internal/domain/auth"
	"github.com/pinehaven/pinehaven-api/internal/domain/booking"
	"github.com/pinehaven/pinehaven-api/internal/domain/notification"
	"github.com/pinehaven/pinehaven-api/internal/domain/profile"
	"github.com/pinehaven/pinehaven-api/internal/domain/restaurant"
	"github.com/pinehaven/pinehaven-api/internal/domain/review"
	"github.com/pinehaven/pinehaven-api/internal/domain/room"
	"github.com/pinehaven/pinehaven-api/internal/domain/user"
	"github.com/pinehaven/pinehaven-api/internal/middleware"
	"github.com/pinehaven/pinehaven-api/internal/pkg/database"
	"github.com/pinehaven/pinehaven-api/internal/pkg/email"
	"github.com/pinehaven/pinehaven-api/internal/pkg/imaging"
	"github.com/pinehaven/pinehaven-api/internal/pkg/jwt"
	"github.com/pinehaven/pinehaven-api/internal/pkg/logger"
	pkgresponse "github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Pine Haven Lodge API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	emailService := email.NewService(email.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailFrom,
		FromName:  cfg.EmailFromName,
	})
	defer emailService.Close()

	// Avatar storage: S3/MinIO when configured, local disk otherwise
	var fileStorage storage.Storage
	if cfg.S3AccessKey != "" {
		fileStorage, err = storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Bucket:    cfg.S3Bucket,
			PublicURL:   cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
	} else {
		fileStorage, err = storage.NewLocalStorage("./uploads", "/uploads")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		log.Warn().Msg("S3 not configured, storing uploads on local disk")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	roomRepo := room.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	restaurantRepo := restaurant.NewRepository(db)

	// ---------- WebSocket hub ----------
	hub := notification.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Services ----------
	verificationService := auth.NewVerificationService(redis, emailService, cfg.FrontendURL)
	authService := auth.NewService(userRepo, jwtService, redis, verificationService)
	profileService := profile.NewService(profileRepo, fileStorage, imaging.NewProcessor(imaging.DefaultConfig()))
	roomService := room.NewService(roomRepo, room.NewCache(redis), bookingRepo)
	reviewService := review.NewService(reviewRepo, bookingRepo, &roomRatingAdapter{rooms: roomService})
	bookingService := booking.NewService(
		bookingRepo,
		&roomCatalogAdapter{rooms: roomRepo},
		notification.NewBookingPublisher(hub, emailService),
		booking.DatePolicy{AllowPastCheckIn: cfg.AllowPastCheckIn},
	)
	restaurantService := restaurant.NewService(restaurantRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, verificationService)
	profileHandler := profile.NewHandler(profileService)
	roomHandler := room.NewHandler(roomService)
	reviewHandler := review.NewHandler(reviewService)
	bookingHandler := booking.NewHandler(bookingService)
	restaurantHandler := restaurant.NewHandler(restaurantService)
	wsHandler := notification.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.RequireAdmin()
	verifiedEmailMiddleware := middleware.RequireVerifiedEmail(userRepo)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (token arrives as a query param, before Compress)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(wsHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/profile", profileHandler.Routes(authMiddleware))
		r.Mount("/rooms", roomHandler.Routes(authMiddleware, adminMiddleware))
		r.Mount("/reviews", reviewHandler.Routes(authMiddleware, verifiedEmailMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware, verifiedEmailMiddleware))
		r.Mount("/restaurant", restaurantHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// Adapter implementations to bridge interface mismatches

// roomCatalogAdapter adapts room.Repository to booking.RoomCatalog
type roomCatalogAdapter struct {
	rooms room.Repository
}

func (a *roomCatalogAdapter) GetForBooking(ctx context.Context, roomID uuid.UUID) (*booking.RoomInfo, error) {
	rm, err := a.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, nil
	}
	return &booking.RoomInfo{
		ID:   rm.ID,
		Name: rm.Name,
		Rates: booking.RateSchedule{
			PricePerNight: rm.PricePerNight,
			CleaningFee:   rm.CleaningFee,
			TaxRate:       rm.TaxRate,
		},
		MaxGuests: rm.MaxGuests,
		Available: rm.Available,
	}, nil
}

// roomRatingAdapter adapts room.Service to review.RatingUpdater
type roomRatingAdapter struct {
	rooms *room.Service
}

func (a *roomRatingAdapter) RefreshRating(ctx context.Context, roomID uuid.UUID, score float64, count int) error {
	return a.rooms.RefreshRating(ctx, roomID, score, count)
}
