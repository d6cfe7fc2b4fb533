package bootstrap

import (
	"context"
	"log"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/controller"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/pkg/mailer"
	"mathtutor-be/internal/pkg/planlimits"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/internal/service"
	"mathtutor-be/pkg/llm/gemini"
	pktNats "mathtutor-be/pkg/nats"
	"mathtutor-be/pkg/tools"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ThreadController   controller.IThreadController
	ChatController     controller.IChatController
	ArtifactController controller.IArtifactController
	ShareController    controller.IShareController
	UsageController    controller.IUsageController
	UserController     controller.IUserController
	BillingController  controller.IBillingController

	// Background services (main.go starts these)
	TitleService service.ITitleService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// In-process job bus for thread title generation
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Model provider
	llmProvider, err := gemini.NewGeminiProvider(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.Model)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize model provider: %v", err)
	}

	// NATS event stream. The app degrades to no-op publishing when the
	// broker is unreachable.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis, used as the public share cache
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

	publisherService := service.NewPublisherService(cfg.Keys.TitleTopic, pubSub)

	userService := service.NewUserService(uowFactory)
	usageService := service.NewUsageService(uowFactory, planlimits.New(cfg.Limits))
	streakService := service.NewStreakService(uowFactory, sysLogger)
	threadService := service.NewThreadService(uowFactory, sysLogger)
	artifactService := service.NewArtifactService(uowFactory, natsPub, sysLogger)
	shareService := service.NewShareService(uowFactory, rdb, sysLogger)

	dispatcher := tools.NewDispatcher(
		usageService,
		artifactService,
		sysLogger,
		tools.NewGraphTool(),
		tools.NewFlashcardTool(llmProvider),
		tools.NewSolutionTool(llmProvider),
		tools.NewPracticeTestTool(llmProvider),
	)

	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		dispatcher,
		threadService,
		streakService,
		userService,
		publisherService,
		sysLogger,
	)

	billingService := service.NewBillingService(
		uowFactory,
		userService,
		emailService,
		natsPub,
		cfg.Billing,
		cfg.App.ClientURL,
		sysLogger,
	)

	titleService := service.NewTitleService(
		pubSub,
		cfg.Keys.TitleTopic,
		uowFactory,
		llmProvider,
		cfg.Ai.TitleModel,
		threadService,
		sysLogger,
	)

	return &Container{
		ThreadController:   controller.NewThreadController(threadService, userService),
		ChatController:     controller.NewChatController(chatService, userService, sysLogger),
		ArtifactController: controller.NewArtifactController(artifactService, userService),
		ShareController:    controller.NewShareController(shareService, userService),
		UsageController:    controller.NewUsageController(usageService, streakService, userService),
		UserController:     controller.NewUserController(userService),
		BillingController:  controller.NewBillingController(billingService, userService, sysLogger),

		TitleService: titleService,
		Logger:       sysLogger,
	}
}
