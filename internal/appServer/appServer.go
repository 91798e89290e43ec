package appServer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobgate/jobgate-backend/config"
	repository "github.com/jobgate/jobgate-backend/internal/database/postgres"
	"github.com/jobgate/jobgate-backend/internal/service"
	"github.com/jobgate/jobgate-backend/internal/transport"
	"github.com/jobgate/jobgate-backend/internal/worker"

	"github.com/jobgate/jobgate-backend/pkg/mailer"
	"github.com/jobgate/jobgate-backend/pkg/postgres"
	"github.com/jobgate/jobgate-backend/pkg/queue"
	"github.com/jobgate/jobgate-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
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
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	talentRepo := repository.NewTalentRepository(db)
	participationRepo := repository.NewParticipationRepository(db)

	// Initialize mailer
	appMailer := mailer.NewMailer(&cfg.Email)
	if !cfg.Email.Enabled {
		logrus.Warn("Email sending disabled, messages will be logged only")
	}

	var taskQueue queue.Queue

	if cfg.Redis.Host != "" {
		redisConfig := queue.DefaultRedisQueueConfig()
		redisConfig.Addr = fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		redisConfig.Password = cfg.Redis.Password
		redisConfig.DB = cfg.Redis.DB

		retryManager := queue.NewRetryManager(3, 5*time.Second)
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()
		dlqHandler := queue.NewDefaultDLQHandler(redisClient, redisConfig.DLQ, redisConfig.MainQueue)

		redisQueue, err := queue.NewRedisQueue(redisConfig, retryManager, dlqHandler)
		if err != nil {
			logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
		} else {
			logrus.Info("Redis queue initialized")
			taskQueue = redisQueue
		}
	}

	// Initialize services
	eventService := service.NewEventService(eventRepo, timeSlotRepo, participationRepo, &cfg.Allocator)
	registrationService := service.NewRegistrationService(eventRepo, timeSlotRepo, talentRepo, participationRepo, taskQueue, &cfg.Allocator)
	participationService := service.NewParticipationService(participationRepo, taskQueue, &cfg.Worker)
	talentService := service.NewTalentService(talentRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize task handler if queue is available
	if taskQueue != nil {
		marker := service.NewReminderMarkerAdapter(participationService)
		taskHandler := queue.NewTaskHandler(appMailer, marker)

		// Start queue consumer
		go func() {
			if err := taskQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
				logrus.Errorf("Queue subscriber error: %v", err)
			}
		}()
		logrus.Info("Queue subscriber started")

		// Initialize reminder worker
		interval := cfg.Worker.ReminderInterval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		reminderWorker := worker.NewReminderWorker(participationService, interval)
		go reminderWorker.Start(ctx)
		logrus.Info("Reminder worker started")
	}

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService)
	registrationHandler := transport.NewRegistrationHandler(registrationService)
	participationHandler := transport.NewParticipationHandler(participationService)
	talentHandler := transport.NewTalentHandler(talentService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" || cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(eventHandler, registrationHandler, participationHandler, talentHandler)); err != nil {
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

	if taskQueue != nil {
		if err := taskQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutting down: %s", err.Error())
		}
	}
}
