package bootstrap

import (
	"log"
	"time"

	"aura-ops-be/internal/config"
	"aura-ops-be/internal/controller"
	"aura-ops-be/internal/entity"
	"aura-ops-be/internal/pkg/logger"
	"aura-ops-be/internal/repository/memory"
	"aura-ops-be/internal/service"
	"aura-ops-be/pkg/aura"
	"aura-ops-be/pkg/embedding"
	"aura-ops-be/pkg/graph"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	InstanceController controller.IInstanceController
	ContentController  controller.IContentController
	NoticeController   controller.INoticeController
	TenantController   controller.ITenantController
	MetricsController  controller.IMetricsController

	// Background services (exposed for main.go to run)
	NoticeService service.INoticeService

	// Held for shutdown
	GraphClient *graph.Client
	SysLogger   logger.ILogger
}

func NewContainer(graphClient *graph.Client, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Stores
	instanceRepo := memory.NewInstanceRepository()
	noticeRepo := memory.NewNoticeRepository(time.Duration(cfg.App.NoticeTTLSeconds) * time.Second)

	// 4. Remote clients
	tokenProvider := aura.NewTokenProvider(cfg.Aura.ClientID, cfg.Aura.ClientSecret, cfg.Aura.TokenURL)
	auraClient := aura.NewClient(tokenProvider, cfg.Aura.APIBaseURL, time.Duration(cfg.Aura.TimeoutSeconds)*time.Second)

	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		vertexProvider, err := embedding.NewVertexProvider(
			cfg.Ai.VertexProjectID,
			cfg.Ai.VertexLocation,
			cfg.Ai.VertexModel,
		)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize Vertex embedding provider: %v", err)
		}
		embeddingProvider = vertexProvider
		log.Printf("[INFO] Using Embedding Provider: VERTEX (%s)", cfg.Ai.VertexModel)
	}

	// 5. Tenant catalog
	tenantCatalog, err := entity.LoadTenantCatalog(cfg.Tenants.CatalogPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load tenant catalog: %v", err)
	}

	// 6. Services
	noticeService := service.NewNoticeService(pubSub, cfg.App.NoticeTopic, noticeRepo)
	reconcilerService := service.NewReconcilerService(auraClient, instanceRepo, noticeService, sysLogger)
	contentService := service.NewContentService(embeddingProvider, graphClient, noticeService, sysLogger)

	// 7. Controllers
	return &Container{
		InstanceController: controller.NewInstanceController(reconcilerService),
		ContentController:  controller.NewContentController(contentService),
		NoticeController:   controller.NewNoticeController(noticeService),
		TenantController:   controller.NewTenantController(tenantCatalog),
		MetricsController:  controller.NewMetricsController(),

		NoticeService: noticeService,
		GraphClient:   graphClient,
		SysLogger:     sysLogger,
	}
}
