package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	auditdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/audit/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/config"
	customerdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/customer/domain"
	expensedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/expense/domain"
	invoicedomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/invoice/domain"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability/logger"
	"github.com/sufillxman/New-Mobile-Point-ERP/internal/observability/metrics"
	paymentdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/payment/domain"
	productdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/product/domain"
	reportdomain "github.com/sufillxman/New-Mobile-Point-ERP/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

type ServerParam struct {
	fx.In

	Cfg         config.Config
	DB          *gorm.DB
	Log         *zap.Logger
	Engine      *gin.Engine
	CustomerSvc customerdomain.Service
	ProductSvc  productdomain.Service
	InvoiceSvc  invoicedomain.Service
	PaymentSvc  paymentdomain.Service
	ExpenseSvc  expensedomain.Service
	ReportSvc   reportdomain.Service
	AuditSvc    auditdomain.Service `optional:"true"`
}

type Server struct {
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	engine *gin.Engine

	customerSvc customerdomain.Service
	productSvc  productdomain.Service
	invoiceSvc  invoicedomain.Service
	paymentSvc  paymentdomain.Service
	expenseSvc  expensedomain.Service
	reportSvc   reportdomain.Service
	auditSvc    auditdomain.Service

	writeLimiter *rateLimiter
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{SkipPaths: []string{"/healthz", "/metrics"}}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:    p.Cfg,
		db:     p.DB,
		log:    p.Log.Named("server"),
		engine: p.Engine,

		customerSvc: p.CustomerSvc,
		productSvc:  p.ProductSvc,
		invoiceSvc:  p.InvoiceSvc,
		paymentSvc:  p.PaymentSvc,
		expenseSvc:  p.ExpenseSvc,
		reportSvc:   p.ReportSvc,
		auditSvc:    p.AuditSvc,

		writeLimiter: newRateLimiter(60, time.Minute),
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.Use(s.limitWrites())

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.POST("/products", s.CreateProduct)
	api.GET("/products", s.ListProducts)
	api.GET("/products/:id", s.GetProductByID)
	api.POST("/products/:id/toggle", s.ToggleProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.POST("/invoices/:id/payments", s.ApplyPayment)

	api.POST("/expenses", s.CreateExpense)
	api.GET("/expenses", s.ListExpenses)

	api.GET("/dashboard", s.GetDashboard)
	api.GET("/audit", s.ListAuditLog)
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// limitWrites applies the per-client write budget to mutating methods.
func (s *Server) limitWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if !s.writeLimiter.Allow(c.ClientIP()) {
				AbortWithError(c, ErrTooManyRequests)
				return
			}
		}
		c.Next()
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
