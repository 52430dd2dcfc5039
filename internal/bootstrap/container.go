package bootstrap

import (
	"context"
	"log"

	"civicvoice-be/internal/config"
	"civicvoice-be/internal/controller"
	"civicvoice-be/internal/handler"
	"civicvoice-be/internal/pkg/logger"
	"civicvoice-be/internal/pkg/mailer"
	"civicvoice-be/internal/portal"
	"civicvoice-be/internal/repository/unitofwork"
	"civicvoice-be/internal/service"
	"civicvoice-be/internal/session"
	"civicvoice-be/internal/websocket"
	"civicvoice-be/pkg/admin/dashboard"

	pktNats "civicvoice-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	FeedbackController controller.IFeedbackController
	AdminController    controller.IAdminController
	PortalController   controller.IPortalController

	// Background services (main.go runs them)
	ConsumerService service.IConsumerService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	SessionStore session.Store
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Work queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Session store backend per config
	var sessionStore session.Store
	if cfg.Session.Backend == "redis" {
		sessionStore = session.NewRedisStore(rdb)
		log.Printf("[INFO] Using Redis session store")
	} else {
		sessionStore = session.NewMemoryStore()
		log.Printf("[INFO] Using in-memory session store")
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Topics.StatusEmail)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.StatusEmail,
		uowFactory,
		emailService,
	)

	authService := service.NewAuthService(uowFactory, sessionStore, emailService, natsPub)
	feedbackService := service.NewFeedbackService(uowFactory, publisherService, natsPub)

	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	adminService := service.NewAdminService(uowFactory, dashboardAggregator)

	shellService := portal.NewShellService(sessionStore, authService, sysLogger)

	// 3.5 Notification system
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, sessionStore, wsLogger)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		FeedbackController: controller.NewFeedbackController(feedbackService, sessionStore),
		AdminController:    controller.NewAdminController(adminService, feedbackService, sessionStore),
		PortalController:   controller.NewPortalController(shellService, sessionStore),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		SessionStore: sessionStore,
	}
}
