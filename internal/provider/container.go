package provider

import (
	"github.com/storepanel/internal/authz"
	"github.com/storepanel/internal/cache"
	"github.com/storepanel/internal/config"
	"github.com/storepanel/internal/logger"
	"github.com/storepanel/internal/models"
	"github.com/storepanel/internal/queue"
	"github.com/storepanel/internal/repository"
	"github.com/storepanel/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StoreRepo        repository.StoreRepository
	UserRepo         repository.UserRepository
	CategoryRepo     repository.CategoryRepository
	BrandRepo        repository.BrandRepository
	ProductRepo      repository.ProductRepository
	CustomerRepo     repository.CustomerRepository
	OrderRepo        repository.OrderRepository
	NotificationRepo repository.NotificationRepository
	ActivityLogRepo  repository.ActivityLogRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	ActivityService     *service.ActivityService
	StoreService        *service.StoreService
	UserService         *service.UserService
	CategoryService     *service.CategoryService
	BrandService        *service.BrandService
	ProductService      *service.ProductService
	CustomerService     *service.CustomerService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
	DashboardService    *service.DashboardService
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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StoreRepo = repository.NewStoreRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.ActivityLogRepo = repository.NewActivityLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
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

	c.ActivityService = service.NewActivityService(c.ActivityLogRepo)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.StoreService = service.NewStoreService(c.StoreRepo, c.ActivityService)
	c.UserService = service.NewUserService(c.UserRepo, c.StoreRepo, c.AuthService, c.AuthzService, c.ActivityService)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ActivityService)
	c.BrandService = service.NewBrandService(c.BrandRepo, c.ActivityService)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo, c.ActivityService)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.OrderRepo, c.ActivityService)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.ProductRepo, c.CustomerRepo, c.StoreRepo, c.ActivityService)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.CustomerRepo, c.QueueClient, c.ActivityService)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.ActivityLogRepo)
}
