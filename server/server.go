package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/example/adminshop/pkg/audit"
	"github.com/example/adminshop/pkg/config"
	"github.com/example/adminshop/pkg/repository"
	"github.com/example/adminshop/pkg/store"
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server is the admin dashboard REST API. The store is the single source of
// truth; redis holds read-through list caches; mongo keeps the audit trail.
type Server struct {
	config *config.Config
	store  store.Store
	cache  *repository.RedisRepository
	mongo  *repository.MongoRepository
	audit  *audit.Recorder
	logger *zap.Logger
	router *gin.Engine
}

func New(cfg *config.Config, logger *zap.Logger, st store.Store, cache *repository.RedisRepository, mongoRepo *repository.MongoRepository, recorder *audit.Recorder) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))

	return &Server{
		config: cfg,
		store:  st,
		cache:  cache,
		mongo:  mongoRepo,
		audit:  recorder,
		logger: logger,
		router: router,
	}
}

func (s *Server) SetupRoutes() {
	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Category routes
	categories := s.router.Group("/category")
	{
		categories.GET("", s.listCategories)
		categories.POST("", s.createCategory)
		categories.PUT("/:id", s.updateCategory)
		categories.DELETE("/:id", s.deleteCategory)
	}

	// Product routes
	products := s.router.Group("/products")
	{
		products.GET("", s.listProducts)
		products.POST("", s.createProduct)
		products.PUT("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
	}

	// Order routes
	orders := s.router.Group("/order")
	{
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.PUT("/:id/status", s.updateOrderStatus)
		orders.DELETE("/:id", s.deleteOrder)
	}

	// Contact message routes
	messages := s.router.Group("/message")
	{
		messages.GET("", s.listMessages)
		messages.POST("", s.createMessage)
		messages.PUT("/:id/read", s.markMessageRead)
		messages.DELETE("/:id", s.deleteMessage)
	}

	// Upload
	s.router.POST("/upload", s.uploadFile)
	s.router.Static("/uploads", s.config.Upload.Dir)

	// Dashboard counters and audit trail
	s.router.GET("/dashboard", s.dashboardStats)
	s.router.GET("/audit/:id", s.entityAuditLogs)

	// Swagger
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Admin API starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// invalidate drops cached listings after a successful mutation. A cache
// failure only degrades freshness, so it is logged and swallowed.
func (s *Server) invalidate(c *gin.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(c.Request.Context(), keys...); err != nil {
		s.logger.Warn("Failed to invalidate cache",
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
