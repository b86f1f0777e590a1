package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DanekaBm/eventhub/config"
	repository "github.com/DanekaBm/eventhub/internal/database/postgres"
	redisrepo "github.com/DanekaBm/eventhub/internal/database/redis"
	"github.com/DanekaBm/eventhub/internal/service"
	"github.com/DanekaBm/eventhub/internal/transport"
	"github.com/DanekaBm/eventhub/pkg/postgres"
	"github.com/DanekaBm/eventhub/pkg/redis"
	"github.com/DanekaBm/eventhub/pkg/token"
	"github.com/DanekaBm/eventhub/pkg/upload"
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

	// Initialize Redis (session store)
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	sessions := redisrepo.NewSessionStore(redisClient, cfg.JWT.Expiration)
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	uploads := upload.NewService(
		upload.NewFileStorage(cfg.Upload.BasePath),
		cfg.Upload.BaseURL,
		cfg.Upload.MaxSizeBytes,
		cfg.Upload.ThumbWidth,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, sessions, tokens)
	userService := service.NewUserService(userRepo, sessions, uploads)
	eventService := service.NewEventService(eventRepo, uploads)
	engagementService := service.NewEngagementService(engagementRepo, eventRepo, userRepo)
	ticketService := service.NewTicketService(ticketRepo)

	// Initialize handlers
	cookieMaxAge := int(cfg.JWT.Expiration.Seconds())
	handlers := &transport.Handlers{
		Auth:       transport.NewAuthHandler(authService, userService, cookieMaxAge, cfg.Server.Env == "production"),
		User:       transport.NewUserHandler(userService),
		Event:      transport.NewEventHandler(eventService),
		Engagement: transport.NewEngagementHandler(engagementService),
		Ticket:     transport.NewTicketHandler(ticketService),
	}

	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := transport.InitRoutes(handlers, authService, cfg.Upload.BasePath, cfg.Server.Timeout)

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
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
