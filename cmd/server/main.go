package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	configs "assignment_service/config"
	"assignment_service/internal/domain"
	"assignment_service/internal/metrics"
	"assignment_service/internal/middleware"
	"assignment_service/internal/repository"
	"assignment_service/internal/server/httpapi"
	"assignment_service/internal/service"
	"assignment_service/pkg/db"
	"assignment_service/pkg/kafka"
	"assignment_service/pkg/logger"
)

type eventPublisher struct {
	producer *kafka.Producer
}

func (p *eventPublisher) Publish(ctx context.Context, event *domain.SubmissionEvent) error {
	return p.producer.Send(ctx, event)
}

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pg, err := db.NewPostgres(db.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.DBName,
		SSLMode:  cfg.DB.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	userRepo := repository.NewUserRepository(pg.DB())
	assignmentRepo := repository.NewAssignmentRepository(pg.DB())
	submissionRepo := repository.NewSubmissionRepository(pg.DB())

	if cfg.Users.CSVPath != "" {
		if err := service.BootstrapUsers(context.Background(), cfg.Users.CSVPath, userRepo, log); err != nil {
			log.Errorf("Account bootstrap failed: %v", err)
		}
	}

	kafkaProducer, err := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kafkaProducer.Close()

	var counter metrics.Counter = metrics.NoopCounter{}
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
		counter = metrics.NewRedisCounter(rdb, cfg.Redis.Prefix)
	}

	assignmentService := service.NewAssignmentService(assignmentRepo)
	submissionService := service.NewSubmissionService(
		assignmentRepo,
		submissionRepo,
		&eventPublisher{producer: kafkaProducer},
	)

	handler := httpapi.NewHandler(assignmentService, submissionService, pg, log)
	router := httpapi.NewRouter(
		handler,
		middleware.NewAuthMiddleware(userRepo, pg, counter, log),
		middleware.NewLoggingMiddleware(log),
	)

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.Timeout,
		WriteTimeout: cfg.HTTP.Timeout,
	}

	go func() {
		log.Infof("Starting HTTP server on %s", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Shutdown error: %v", err)
	}
	log.Info("Server stopped")
}
