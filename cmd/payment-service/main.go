package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/config"
	"github.com/MdShalimSadman/maha-ecommerce/internal/delivery/http/handlers"
	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/cache"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/kafka"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/mailer"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/metrics"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/migrate"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/postgres"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/postgres/repository"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/sslcommerz"
	"github.com/MdShalimSadman/maha-ecommerce/internal/usecase"
	"github.com/MdShalimSadman/maha-ecommerce/internal/usecase/payment"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.OrderDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init order repo
	orderRepo := repository.NewDefaultOrderRepository(db)

	// Init gateway client
	gatewayClient, err := sslcommerz.NewClient(cfg.SSLCommerz, cfg.HTTPServer.PublicBaseURL)
	if err != nil {
		log.Fatalf("failed to init sslcommerz client: %v", err)
	}

	// Verdict cache keeps racing duplicate callbacks from re-hitting the validator
	var verifier domain.GatewayVerifier = gatewayClient
	if cfg.Redis.Addr != "" {
		verdictCache := cache.NewRedisCache(cfg.Redis.Addr, "payment-service")
		verifier = sslcommerz.NewCachedVerifier(gatewayClient, verdictCache, 15*time.Minute)
	}

	// Init mailer and its queue worker
	orderMailer := mailer.NewMailer(cfg.SMTP)
	go orderMailer.StartWorker(context.Background())

	// Init kafka payment event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)}
	paymentPublisher := kafka.NewPaymentPublisher(brokers, cfg.Kafka.Topic)

	// Init metrics
	paymentMetrics := metrics.NewPaymentMetrics()

	// Init usecases
	paymentUsecase := payment.NewDefaultPaymentUsecase(
		orderRepo,
		verifier,
		orderMailer,
		paymentPublisher,
		paymentMetrics,
	)
	orderUsecase := usecase.NewDefaultOrderUsecase(orderRepo)

	// HTTP delivery
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, gatewayClient)
	orderHandler := handlers.NewOrderHandler(orderUsecase)
	router := handlers.NewRouter(paymentHandler, orderHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("payment service started on %s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
