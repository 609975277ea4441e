package bootstrap

import (
	"context"
	"log"

	"marknote-be/internal/config"
	"marknote-be/internal/controller"
	"marknote-be/internal/pkg/logger"
	"marknote-be/internal/pkg/serverutils"
	"marknote-be/internal/repository/unitofwork"
	"marknote-be/internal/service"
	"marknote-be/internal/websocket"
	"marknote-be/pkg/database"
	pktNats "marknote-be/pkg/nats"
	"marknote-be/pkg/webtitle"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	SystemController   controller.ISystemController
	NoteController     controller.INoteController
	BookmarkController controller.IBookmarkController
	EventController    controller.IEventController

	WebSocketHub *websocket.Hub

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

// NewContainer wires the application. db may be nil when cfg selects the
// in-memory store.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 1. Storage
	var uowFactory unitofwork.RepositoryFactory
	var health controller.HealthChecker
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
		health = database.NewPinger(db)
	} else {
		log.Printf("[INFO] Using in-memory store; data is lost on restart")
		uowFactory = unitofwork.NewMemoryRepositoryFactory()
	}

	// 2. Redis (title cache, cross-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	wsLogger := logger.NewIsolatedLogger(cfg.App.WsLogFilePath)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)
	relays := []service.EventRelay{c.WebSocketHub}

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			relays = append(relays, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, relays, eventLogger)

	// 4. Title lookup
	var titleCache webtitle.TitleCache = webtitle.NewMemoryCache(cfg.Title.CacheTTL)
	if rdb != nil {
		titleCache = webtitle.NewRedisCache(rdb, cfg.Title.CacheTTL)
	}

	httpFetcher := webtitle.NewHTTPFetcher(cfg.Title.FetchTimeout, func(url string, err error) {
		sysLogger.Warn("WEBTITLE", "Falling back to URL as title", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	})
	titleFetcher := webtitle.NewCachedFetcher(httpFetcher, titleCache)

	// 5. Services
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)
	bookmarkService := service.NewBookmarkService(uowFactory, publisherService, titleFetcher, sysLogger)

	// 6. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JwtSecret)
	c.SystemController = controller.NewSystemController(health)
	c.NoteController = controller.NewNoteController(noteService, auth)
	c.BookmarkController = controller.NewBookmarkController(bookmarkService, auth)
	c.EventController = controller.NewEventController(c.WebSocketHub, serverutils.JwtStreamMiddleware(cfg.Auth.JwtSecret))

	return c
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
