package provider

import (
	"time"

	"github.com/tijara-next/internal/authz"
	"github.com/tijara-next/internal/cache"
	"github.com/tijara-next/internal/config"
	"github.com/tijara-next/internal/constants"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/queue"
	"github.com/tijara-next/internal/repository"
	"github.com/tijara-next/internal/service"

	"gorm.io/gorm"
)

// Container wires repositories and services once at startup. Handlers
// reach everything through it.
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client

	// Repositories
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	StatsRepo    repository.StatsRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
	OrderService    *service.OrderService
	StatsService    *service.StatsService
}

// NewContainer builds the dependency graph on an open database handle.
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
		DB:          db,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	c.OrderRepo = repository.NewOrderRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
	c.CategoryRepo = repository.NewCategoryRepository(c.DB)
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.StatsRepo = repository.NewStatsRepository(c.DB)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.Config.Order.ShippingPolicy)

	fraud := service.NewFraudChecker(c.OrderRepo, service.FraudThresholds{
		MaxPhonesPerIP:       c.Config.Order.FraudMaxPhonesPerIP,
		MaxGovernoratesPerIP: c.Config.Order.FraudMaxGovernoratesPerIP,
	})
	phoneLock := cache.NewPhoneLock(0)
	mergeWindow := time.Duration(c.Config.Order.MergeWindowHours) * time.Hour
	if mergeWindow <= 0 {
		mergeWindow = time.Duration(constants.DefaultMergeWindowHours) * time.Hour
	}
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.ProductRepo, c.CartRepo, fraud, phoneLock, c.QueueClient, service.OrderPolicy{
		MergeWindow:    mergeWindow,
		ShippingPolicy: c.Config.Order.ShippingPolicy,
	})
	c.StatsService = service.NewStatsService(c.StatsRepo)
}
