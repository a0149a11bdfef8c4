package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wittybrains/busbooking/api"
	"github.com/wittybrains/busbooking/config"
	"github.com/wittybrains/busbooking/internal/bootstrap"
	"github.com/wittybrains/busbooking/internal/cache"
	"github.com/wittybrains/busbooking/internal/kafka"
	"github.com/wittybrains/busbooking/internal/repository"
	"github.com/wittybrains/busbooking/internal/service/booking"
	"github.com/wittybrains/busbooking/internal/service/schedules"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SchedulesCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	notifier := kafka.NewNotifier(producer, cfg.Kafka.NotificationsTopic)

	bookingRepo := repository.NewBookingRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingService := booking.NewBookingService(
		bookingRepo,
		scheduleRepo,
		userRepo,
		notifier,
		time.Duration(cfg.Booking.ExpireAfterSeconds)*time.Second,
	)
	scheduleService := schedules.NewScheduleService(scheduleRepo, redisCache)

	router := api.NewRouter(
		cfg.HTTP,
		api.NewBookingHandler(bookingService, cfg.HTTP.EmptyListOK),
		api.NewScheduleHandler(scheduleService),
	)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
