package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mohdnadeem3849/kubecart/internal/cache"
	"github.com/mohdnadeem3849/kubecart/internal/catalog"
	"github.com/mohdnadeem3849/kubecart/internal/events"
	"github.com/mohdnadeem3849/kubecart/internal/httpapi"
	"github.com/mohdnadeem3849/kubecart/internal/metrics"
	"github.com/mohdnadeem3849/kubecart/internal/repository"
	"github.com/mohdnadeem3849/kubecart/internal/service"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("orders service starting...")

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	httpPort := getEnv("HTTP_PORT", "8080")
	catalogBaseURL := getEnv("CATALOG_BASE_URL", "http://localhost:8081")
	catalogTimeout := 5 * time.Second
	requestTimeout := 30 * time.Second
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	kafkaTopic := getEnv("KAFKA_ORDERS_TOPIC", "order-events")

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}
	creds := &repository.Credentials{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              dbPort,
		User:              getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "kubecart"),
		MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./migrations"),
	}

	db, err := repository.Connect(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := repository.RunMigrations(db, creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer redisClient.Close()
	cartCache := cache.NewRedisCache(redisClient)

	var publisher events.Publisher = events.NoopPublisher{}
	if kafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(kafkaBrokers, ","), kafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	cartRepo := repository.NewPostgresCartRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	resolver := catalog.NewClient(catalogBaseURL, catalogTimeout)
	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	cartService := service.NewCartService(cartRepo, cartCache)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, resolver, cartCache, publisher, checkoutMetrics)
	ordersService := service.NewOrdersService(orderRepo)

	router := httpapi.NewRouter(
		httpapi.NewCartHandler(cartService),
		httpapi.NewCheckoutHandler(checkoutService),
		httpapi.NewOrdersHandler(ordersService),
		db,
		requestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      otelhttp.NewHandler(router, "orders"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Orders service listening on :%s", httpPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("Orders service stopped")
}
