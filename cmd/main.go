package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/infrastructure/configs"
	"github.com/parleychat/parley/internal/infrastructure/events"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/messaging"
	"github.com/parleychat/parley/internal/infrastructure/ratelimiter"
	"github.com/parleychat/parley/internal/infrastructure/tracing"
	"github.com/parleychat/parley/internal/infrastructure/ws"
	"github.com/parleychat/parley/internal/persistence/db"
	"github.com/parleychat/parley/internal/persistence/repository"
	"github.com/parleychat/parley/internal/presentation/api"
	"github.com/parleychat/parley/internal/presentation/handler/chats"
	"github.com/parleychat/parley/internal/presentation/handler/health"
	"github.com/parleychat/parley/internal/presentation/handler/rooms"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	serviceName = "parley"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	appLogger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := db.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	mongoClient, err := db.NewMongoClient(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.DisconnectMongo(context.Background(), mongoClient); err != nil {
			logger.Errorw("mongo disconnect failed", "error", err)
		}
	}()

	database := db.GetDatabase(mongoClient, cfg.Mongo)
	archiveRepository := repository.NewChatArchiveRepository(database)
	auditRepository := repository.NewRoomAuditLogRepository(database)

	indexCtx, indexCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := auditRepository.EnsureIndexes(indexCtx); err != nil {
		logger.Warnw("audit log index creation failed", "error", err)
	}
	indexCancel()

	roomStore := repository.NewRedisRoomStore(rdb, tracing.GetTracer("parley.roomstore"))

	rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitmq.Close()

	log.Println("Starting RabbitMQ connection")

	chatPublisher := events.NewChatPublisher(rabbitmq)

	chatConsumer := events.NewChatConsumer(rabbitmq, auditRepository)
	go func() {
		if err := chatConsumer.Listen(); err != nil {
			logger.Errorw("chat event consumer stopped", "error", err)
		}
	}()

	roomManager := ws.NewRoomManager()

	directory := chat.NewDirectory(roomStore, appLogger, chatPublisher)
	presence := chat.NewPresence(roomStore, roomManager, appLogger, chatPublisher)
	router := chat.NewRouter(roomStore, roomManager, appLogger)
	archiver := chat.NewArchiver(roomStore, archiveRepository, appLogger, chatPublisher)

	roomHandler := rooms.NewHandler(directory, presence, router, roomManager)
	chatsHandler := chats.NewHandler(archiver)
	healthHandler := health.NewHandler(
		health.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}),
		health.PingerFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}),
	)

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		Cache:            ratelimiter.NewRedisCache(rdb),
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(*cfg, roomHandler, chatsHandler, healthHandler, logger, appLogger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
