package provider

import (
	"github.com/shopora-next/internal/authz"
	"github.com/shopora-next/internal/cache"
	"github.com/shopora-next/internal/config"
	"github.com/shopora-next/internal/logger"
	"github.com/shopora-next/internal/models"
	"github.com/shopora-next/internal/pricing"
	"github.com/shopora-next/internal/queue"
	"github.com/shopora-next/internal/repository"
	"github.com/shopora-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	SnapshotRepo repository.SnapshotRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	CaptchaService      *service.CaptchaService
	CatalogService      *service.CatalogService
	PromotionRegistry   *service.PromotionRegistry
	CartService         *service.CartService
	WishlistService     *service.WishlistService
	LocationService     *service.LocationService
	ProfileService      *service.ProfileService
	VerificationService service.VerificationService
	OrderService        *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.SnapshotRepo = repository.NewSnapshotRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	pricingCfg := pricing.NewConfig(
		c.Config.Pricing.TaxRate,
		c.Config.Pricing.FreeShippingThreshold,
		c.Config.Pricing.ShippingFlatFee,
	)

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CatalogService = service.NewCatalogService()
	c.PromotionRegistry = service.NewPromotionRegistry(c.Config.Promo.Codes, c.SnapshotRepo)
	c.CartService = service.NewCartService(c.SnapshotRepo, c.PromotionRegistry, pricingCfg)
	c.WishlistService = service.NewWishlistService(c.SnapshotRepo)
	c.LocationService = service.NewLocationService(c.SnapshotRepo)
	c.ProfileService = service.NewProfileService(c.SnapshotRepo)
	c.VerificationService = service.NewSimulatedVerificationService(c.QueueClient, c.ProfileService, c.Config.Verification.SendIntervalSeconds)
	c.OrderService = service.NewOrderService(c.SnapshotRepo, c.CartService, c.PromotionRegistry, c.LocationService, c.ProfileService, c.QueueClient)
}
