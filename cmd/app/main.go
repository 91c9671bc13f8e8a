package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/agentrepo"
	"fulfillment/internal/adapters/out/postgres/assignmentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	config := getConfigs()

	gormDB, err := openDatabase(config)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	root := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)

	jobManager := root.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	server := httpin.NewServer(root.CreateServerHandlers())
	server.RegisterRoutes(e)

	go func() {
		if serveErr := e.Start("0.0.0.0:" + config.HTTPPort); serveErr != nil {
			logger.Info("http server stopped", "error", serveErr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	jobManager.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}

func getConfigs() cmd.Config {
	// Absence of a .env file is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   envOrDefault("HTTP_PORT", "8080"),
		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     envOrDefault("DB_PORT", "5432"),
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: envOrDefault("DB_PASSWORD", "postgres"),
		DBName:     envOrDefault("DB_NAME", "fulfillment"),
		DBSslMode:  envOrDefault("DB_SSLMODE", "disable"),

		RedisAddr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		HandoverCodeTTL:  durationOrDefault("HANDOVER_CODE_TTL", 30*time.Minute),
		DeliveryCodeTTL:  durationOrDefault("DELIVERY_CODE_TTL", 60*time.Minute),
		CodeLength:       intOrDefault("CODE_LENGTH", 6),
		AcceptanceWindow: durationOrDefault("ACCEPTANCE_WINDOW", 10*time.Minute),
		AlertTTL:         durationOrDefault("NO_AGENT_ALERT_TTL", time.Minute),
		SweepSchedule:    envOrDefault("SWEEP_SCHEDULE", "0 * * * * *"),

		RouteDistanceKm:  envOrDefault("ROUTE_DISTANCE_KM", "5.0"),
		RouteTimeMinutes: intOrDefault("ROUTE_TIME_MINUTES", 30),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func intOrDefault(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode,
	)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusEventDTO{},
		&agentrepo.AgentDTO{},
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.TrackingPointDTO{},
		&assignmentrepo.ProofOfDeliveryDTO{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
