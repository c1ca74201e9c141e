package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventboard/config"
	repository "eventboard/internal/database/postgres"
	redisCache "eventboard/internal/database/redis"
	"eventboard/internal/entity"
	"eventboard/internal/service"
	"eventboard/internal/transport"
	"eventboard/internal/worker"

	"eventboard/pkg/postgres"
	"eventboard/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize listing cache when enabled; the service runs uncached
	// when Redis is unavailable or the flag is off.
	var listingCache service.ListingCache
	if cfg.App.CacheEnabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis: %v. Continuing without listing cache...", err)
		} else {
			defer redisClient.Close()
			listingCache = redisCache.NewListingCache(redisClient, cfg.App.CacheTTL)
			logrus.Info("Listing cache initialized")
		}
	}

	// Initialize services
	eventService := service.NewEventService(eventRepo, listingCache, cfg.App.EventsPerPage)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)

	// Seed the administrator account so the authorized flag has someone
	// to grant it.
	if err := ensureAdmin(context.Background(), userRepo, cfg); err != nil {
		logrus.Fatalf("Failed to seed admin user: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cache warm worker
	if listingCache != nil {
		warmWorker := worker.NewCacheWarmWorker(eventService, cfg.App.WarmInterval)
		go warmWorker.Start(ctx)
		logrus.Info("Cache warm worker started")
	}

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService)
	authHandler := transport.NewAuthHandler(authService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		routes := transport.InitRoutes(eventHandler, authHandler, authService, cfg.App.TemplatesGlob)
		if err := srv.Run(cfg, routes); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// ensureAdmin creates the configured administrator account on first start.
func ensureAdmin(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	if cfg.App.AdminEmail == "" || cfg.App.AdminPassword == "" {
		logrus.Warn("Admin credentials not configured, skipping admin seed")
		return nil
	}

	if _, err := users.GetByEmail(ctx, cfg.App.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, entity.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.App.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Email:        cfg.App.AdminEmail,
		Name:         "Administrator",
		PasswordHash: string(hash),
		Admin:        true,
		Authorized:   true,
	}

	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	logrus.Infof("Seeded admin user %s", cfg.App.AdminEmail)
	return nil
}
