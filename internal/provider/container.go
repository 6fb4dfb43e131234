package provider

import (
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/authz"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/cache"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/queue"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/storage"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/verification"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Collaborators
	ProofStore    storage.Store
	ProofVerifier verification.Verifier

	// Repositories
	AccountRepo  repository.AccountRepository
	DJRepo       repository.DJRepository
	EventRepo    repository.EventRepository
	ContractRepo repository.ContractRepository
	PaymentRepo  repository.PaymentRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	AccountService   *service.AccountService
	DJService        *service.DJService
	EventService     *service.EventService
	ContractService  *service.ContractService
	PaymentService   *service.PaymentService
	DashboardService *service.DashboardService
}

// NewContainer wires the container.
func NewContainer(cfg *config.Config) *Container {
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
		QueueClient: queueClient,
	}

	c.initCollaborators()
	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initCollaborators() {
	store, err := storage.New(&c.Config.Storage)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "error", err)
		panic(err)
	}
	c.ProofStore = store

	switch c.Config.Verification.Provider {
	case constants.VerifierProviderHTTP:
		verifier, err := verification.NewHTTPVerifier(
			c.Config.Verification.URL,
			time.Duration(c.Config.Verification.TimeoutMS)*time.Millisecond,
		)
		if err != nil {
			logger.Errorw("provider_init_verifier_failed", "error", err)
			panic(err)
		}
		c.ProofVerifier = verifier
	default:
		c.ProofVerifier = verification.NewRuleVerifier(
			c.Config.Verification.AgencyCNPJ,
			c.Config.Verification.MaxProofAgeDays,
		)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AccountRepo = repository.NewAccountRepository(db)
	c.DJRepo = repository.NewDJRepository(db)
	c.EventRepo = repository.NewEventRepository(db)
	c.ContractRepo = repository.NewContractRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
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

	c.AuthService = service.NewAuthService(c.Config, c.AccountRepo)
	c.AccountService = service.NewAccountService(c.AccountRepo, c.AuthzService)
	c.DJService = service.NewDJService(c.DJRepo)
	c.EventService = service.NewEventService(c.EventRepo, c.DJRepo)
	c.ContractService = service.NewContractService(c.ContractRepo, c.EventRepo)
	c.PaymentService = service.NewPaymentService(
		c.Config,
		c.PaymentRepo,
		c.EventRepo,
		c.ProofStore,
		c.ProofVerifier,
		c.QueueClient,
	)
	c.DashboardService = service.NewDashboardService(c.PaymentRepo, c.EventRepo, c.DJRepo)
}
