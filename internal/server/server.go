package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/supportly/internal/agent"
	catalogdomain "github.com/smallbiznis/supportly/internal/catalog/domain"
	chatdomain "github.com/smallbiznis/supportly/internal/chat/domain"
	"github.com/smallbiznis/supportly/internal/config"
	"github.com/smallbiznis/supportly/internal/observability"
	obsmiddleware "github.com/smallbiznis/supportly/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/supportly/internal/observability/metrics"
	obstracing "github.com/smallbiznis/supportly/internal/observability/tracing"
	"github.com/smallbiznis/supportly/internal/ratelimit"
	"github.com/smallbiznis/supportly/internal/tool"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(CORS(cfg.CORSAllowOrigins))
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		addr = ":8000"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// productsAgent is the subset of the agent the product endpoints call.
type productsAgent interface {
	Search(ctx context.Context, text string) (*agent.Result[agent.SearchData], error)
	Details(ctx context.Context, productID string) (*agent.Result[*catalogdomain.ProductDetails], error)
	Availability(ctx context.Context, productID, size, color string) (*agent.Result[agent.AvailabilityData], error)
	CategoryProducts(ctx context.Context, categoryName string) (*agent.Result[[]catalogdomain.CategoryProduct], error)
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	catalogSvc  catalogdomain.Service
	products    productsAgent
	chatSvc     chatdomain.Service
	tools       *tool.Registry
	chatLimiter *ratelimit.ChatLimiter
	obsMetrics  *obsmetrics.Metrics
	log         *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	CatalogSvc  catalogdomain.Service
	Products    *agent.ProductsAgent
	ChatSvc     chatdomain.Service
	Tools       *tool.Registry
	ChatLimiter *ratelimit.ChatLimiter `optional:"true"`
	ObsMetrics  *obsmetrics.Metrics    `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		catalogSvc:  p.CatalogSvc,
		products:    p.Products,
		chatSvc:     p.ChatSvc,
		tools:       p.Tools,
		chatLimiter: p.ChatLimiter,
		obsMetrics:  p.ObsMetrics,
		log:         p.Log.Named("http.server"),
	}

	svc.registerProductRoutes()
	svc.registerChatRoutes()
	svc.registerToolRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerProductRoutes() {
	products := s.engine.Group("/products")

	// -------- Agent --------
	products.POST("/search", s.SearchProducts)
	products.POST("/details", s.ProductDetails)
	products.POST("/availability", s.ProductAvailability)
	products.POST("/category", s.CategoryProducts)

	// -------- Raw catalog --------
	raw := products.Group("/raw")
	{
		raw.GET("/search", s.RawSearch)
		raw.GET("/product/:id", s.RawProduct)
		raw.GET("/categories/:name/products", s.RawCategoryProducts)
		raw.GET("/brands", s.ListBrands)
		raw.GET("/categories", s.ListCategories)

		raw.POST("/brands", s.CreateBrand)
		raw.POST("/categories", s.CreateCategory)
		raw.POST("/product", s.CreateProduct)
		raw.POST("/inventory", s.AddInventory)
		raw.PUT("/inventory", s.UpdateStock)
		raw.POST("/reviews", s.AddReview)
		raw.POST("/relations", s.RelateProducts)
		raw.POST("/refresh", s.RefreshSearchView)
	}
}

func (s *Server) registerChatRoutes() {
	chat := s.engine.Group("/chat")

	chat.POST("", s.ChatRateLimit(), s.SendMessage)
	chat.POST("/feedback", s.SubmitFeedback)
	chat.GET("/:conversationId/messages", s.ListMessages)
}

func (s *Server) registerToolRoutes() {
	tools := s.engine.Group("/tools")

	tools.GET("", s.ListTools)
	tools.POST("/:name", s.ExecuteTool)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
