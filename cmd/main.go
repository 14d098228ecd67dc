package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/panditashushukl/ESamaaj/internal/config"
	"github.com/panditashushukl/ESamaaj/internal/database"
	"github.com/panditashushukl/ESamaaj/internal/handlers"
	"github.com/panditashushukl/ESamaaj/internal/middleware"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/routes"
	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/storage"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, _ := utils.NewLogger(dev)
	defer func() { _ = logger.Sync() }()

	db, mc, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, cfg.MongoOpTimeout, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.RedisDialTimeout, logger)
	if err != nil {
		logger.Warnf("redis unavailable, stats caching disabled: %v", err)
		rdb = nil
	}

	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.UploadTimeout)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	users := repository.NewMongoUserRepo(db, cfg.MongoOpTimeout)
	videos := repository.NewMongoVideoRepo(db, cfg.MongoOpTimeout)
	comments := repository.NewMongoCommentRepo(db, cfg.MongoOpTimeout)
	tweets := repository.NewMongoTweetRepo(db, cfg.MongoOpTimeout)
	subs := repository.NewMongoSubscriptionRepo(db, cfg.MongoOpTimeout)
	likes := repository.NewMongoLikeRepo(db, cfg.MongoOpTimeout)
	playlists := repository.NewMongoPlaylistRepo(db, cfg.MongoOpTimeout)

	jwtm := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTTLMinutes, cfg.JWT.RefreshTTLDays)

	h := routes.Handlers{
		Users:         handlers.NewUserHandler(services.NewAuthService(users, store, jwtm)),
		Videos:        handlers.NewVideoHandler(services.NewVideoService(videos, users, comments, store)),
		Comments:      handlers.NewCommentHandler(services.NewCommentService(comments, videos)),
		Tweets:        handlers.NewTweetHandler(services.NewTweetService(tweets, users, store)),
		Subscriptions: handlers.NewSubscriptionHandler(services.NewSubscriptionService(subs, users)),
		Playlists:     handlers.NewPlaylistHandler(services.NewPlaylistService(playlists, videos, users)),
		Likes:         handlers.NewLikeHandler(services.NewLikeService(likes, videos, comments, tweets)),
		Dashboard:     handlers.NewDashboardHandler(services.NewDashboardService(users, videos, subs, likes, rdb, cfg.StatsTTL)),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler(logger),
		BodyLimit:    256 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigin,
		AllowCredentials: cfg.App.CORSOrigin != "*",
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.Register(app, h, jwtm)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.ShutdownWithContext(timeoutCtx)
	_ = mc.Disconnect(timeoutCtx)
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("shutdown completed")
}
