package main

import (
	"context"
	"os/signal"
	"syscall"

	configs "assignment_service/config"
	"assignment_service/internal/ledger"
	"assignment_service/internal/mailgun"
	"assignment_service/internal/storage"
	"assignment_service/internal/transfer"
	"assignment_service/internal/worker"
	"assignment_service/pkg/kafka"
	"assignment_service/pkg/logger"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s3Client, err := storage.NewClient(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}
	gateway := storage.NewGateway(s3Client, cfg.S3.Bucket)

	dynamoClient, err := ledger.NewClient(ctx, cfg.Ledger.Region)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	mailClient := mailgun.New(cfg.Mailgun, nil)
	notifier := mailgun.NewNotifier(mailClient)
	statusLedger := ledger.New(dynamoClient, cfg.Ledger.Table, mailClient)

	fulfiller := worker.NewFulfiller(
		transfer.NewFetcher(nil),
		gateway,
		notifier,
		statusLedger,
		log,
	)

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer func() { _ = consumer.Close() }()

	log.Infof("Starting fulfillment worker on topic %s", cfg.Kafka.Topic)
	if err := consumer.Run(ctx, fulfiller.Handle); err != nil {
		log.Fatalf("Consumer stopped: %v", err)
	}
	log.Info("Worker stopped")
}
