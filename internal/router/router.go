package router

import (
	"fmt"
	"strings"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/cache"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	functionshandlers "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/functions"
	portalhandlers "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/portal"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the portal API, the functions endpoints and the
// static proof files onto a gin engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	portalHandler := portalhandlers.New(c)
	functionsHandler := functionshandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "unk"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts, try again later",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Proof files are only browsable when stored on local disk.
	if cfg.Storage.Backend == constants.StorageBackendLocal {
		r.Static("/uploads", cfg.Storage.Local.BaseDir)
	}

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), portalHandler.Login)
		}

		// Portal routes: JWT first, then the casbin route check.
		authorized := apiV1.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AccountRepo), RBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", portalHandler.Me)
			authorized.POST("/auth/logout", portalHandler.Logout)
			authorized.PUT("/auth/change-password", portalHandler.ChangePassword)

			authorized.GET("/dashboard/stats", portalHandler.DashboardStats)

			authorized.GET("/payments", portalHandler.ListPayments)
			authorized.POST("/payments", portalHandler.CreatePayment)
			authorized.GET("/payments/:id", portalHandler.GetPayment)
			authorized.POST("/payments/:id/proof", portalHandler.SubmitProof)
			authorized.DELETE("/payments/:id/proof", portalHandler.ClearProof)
			authorized.POST("/payments/:id/verify", portalHandler.VerifyPayment)
			authorized.POST("/payments/:id/mark-paid", portalHandler.MarkPaid)

			authorized.GET("/events", portalHandler.ListEvents)
			authorized.POST("/events", portalHandler.CreateEvent)
			authorized.GET("/events/:id", portalHandler.GetEvent)
			authorized.PUT("/events/:id", portalHandler.UpdateEvent)
			authorized.DELETE("/events/:id", portalHandler.DeleteEvent)

			authorized.GET("/djs", portalHandler.ListDJs)
			authorized.POST("/djs", portalHandler.CreateDJ)
			authorized.GET("/djs/:id", portalHandler.GetDJ)
			authorized.PUT("/djs/:id", portalHandler.UpdateDJ)
			authorized.DELETE("/djs/:id", portalHandler.DeleteDJ)

			authorized.GET("/contracts", portalHandler.ListContracts)
			authorized.POST("/contracts", portalHandler.CreateContract)
			authorized.GET("/contracts/:id", portalHandler.GetContract)
			authorized.PUT("/contracts/:id", portalHandler.UpdateContract)
			authorized.DELETE("/contracts/:id", portalHandler.DeleteContract)

			authorized.GET("/accounts", portalHandler.ListAccounts)
			authorized.POST("/accounts", portalHandler.CreateAccount)
			authorized.GET("/accounts/:id", portalHandler.GetAccount)
			authorized.PUT("/accounts/:id/status", portalHandler.SetAccountStatus)
		}
	}

	// Serverless-compatible boundary. Own CORS, no portal auth, raw
	// HTTP statuses.
	functions := r.Group("/functions")
	functions.Use(functionshandlers.CORS())
	{
		functions.POST("/verify-payment", functionsHandler.VerifyPayment)
		functions.POST("/create-user", functionsHandler.CreateUser)
		functions.OPTIONS("/verify-payment", func(*gin.Context) {})
		functions.OPTIONS("/create-user", func(*gin.Context) {})
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
