package bootstrap

import (
	"context"
	"log"

	"os-help-bot/internal/config"
	"os-help-bot/internal/controller"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/unitofwork"
	"os-help-bot/internal/service"
	"os-help-bot/internal/websocket"
	"os-help-bot/pkg/rag/executor"

	pktNats "os-help-bot/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController

	// Exposed for the websocket route and CLI use
	ChatbotService service.IChatbotService
	Orchestrator   *executor.Orchestrator

	// Background Services (started by Start)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	rdb     *redis.Client
}

// NewContainer wires the whole application. db may be nil, which disables
// the transcript store; NATS and Redis are optional too.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)

	// 3. Infrastructure
	rdb := ConnectRedis(cfg.App.RedisURL)

	var forwarder service.EventForwarder
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			forwarder = pub
		}
	}

	// 4. Pipeline
	orchestrator, sessions, err := NewPipeline(cfg, rdb, sysLogger)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		if natsPub != nil {
			natsPub.Close()
		}
		return nil, err
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventTopic, forwarder, uowFactory, sysLogger)
	chatbotService := service.NewChatbotService(orchestrator, sessions, publisherService, uowFactory, sysLogger)

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)

	return &Container{
		ChatbotController: controller.NewChatbotController(chatbotService),
		ChatbotService:    chatbotService,
		Orchestrator:      orchestrator,
		ConsumerService:   consumerService,
		WebSocketHub:      wsHub,
		Logger:            sysLogger,
		pubSub:            pubSub,
		natsPub:           natsPub,
		rdb:               rdb,
	}, nil
}

// Start launches the background workers; they stop with ctx.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Event bus close: %v", err)
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Logger.Sync()
}

// ConnectRedis returns nil when url is empty or the server is unreachable.
func ConnectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (cache and socket relay disabled)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
