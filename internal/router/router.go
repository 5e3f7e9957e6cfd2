package router

import (
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/command"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/config"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/handler"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/infra"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/middleware"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns the configured Gin engine plus the
// worker pool ready to be started by the caller.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) (*gin.Engine, *worker.Pool) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	clientRepo := repository.NewClientRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	supplyRepo := repository.NewSupplyRepository(db)
	productSupplyRepo := repository.NewProductSupplyRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productionRepo := repository.NewProductionOrderRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	installmentSvc := service.NewInstallmentService(installmentRepo, orderRepo)
	orderSvc := service.NewOrderService(orderRepo, clientRepo, userRepo, productRepo, installmentSvc, dispatcher)
	paymentSvc := service.NewPaymentService(paymentRepo, orderRepo, installmentSvc)
	bomSvc := service.NewBomService(productSupplyRepo, productRepo, supplyRepo)
	supplySvc := service.NewSupplyService(supplyRepo)
	productSvc := service.NewProductService(productRepo, rdb, time.Duration(cfg.PriceCacheTTL)*time.Second)
	productionSvc := service.NewProductionService(productionRepo, orderRepo)
	directorySvc := service.NewDirectoryService(clientRepo, userRepo)

	processor := command.NewProcessor(orderSvc, paymentSvc, installmentSvc, bomSvc, supplySvc, productSvc, productionSvc)

	// ── Workers ──────────────────────────────────────────────────────────────
	pool := worker.NewPool(rdb)
	pool.Register("order_confirmation", worker.NewConfirmationWorker(orderRepo, dispatcher, cfg.PDFStoragePath, cfg.CompanyName))
	pool.Register("email", worker.NewEmailWorker(mailer, smtpCB, rdb))

	// ── Handlers ─────────────────────────────────────────────────────────────
	ordersH := handler.NewOrdersHandler(orderSvc, paymentSvc, installmentSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc, installmentSvc)
	bomH := handler.NewBomHandler(bomSvc)
	suppliesH := handler.NewSuppliesHandler(supplySvc)
	productsH := handler.NewProductsHandler(productSvc, bomSvc)
	productionH := handler.NewProductionHandler(productionSvc)
	directoryH := handler.NewDirectoryHandler(directorySvc)
	commandsH := handler.NewCommandsHandler(processor, dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", ordersH.CreateOrder)
		v1.GET("/orders", ordersH.ListOrders)
		v1.GET("/orders/:id", ordersH.GetOrder)
		v1.POST("/orders/:id/details", ordersH.AddDetail)
		v1.GET("/orders/:id/details", ordersH.ListOrderDetails)
		v1.POST("/orders/:id/confirm", ordersH.ConfirmOrder)
		v1.GET("/orders/:id/installments", ordersH.ListOrderInstallments)
		v1.GET("/orders/:id/payments", ordersH.ListOrderPayments)

		v1.POST("/payments", paymentsH.RecordPayment)
		v1.GET("/payments/:id", paymentsH.GetPayment)
		v1.GET("/installments", paymentsH.ListInstallments)

		v1.POST("/bom", bomH.AddEdge)
		v1.PUT("/bom", bomH.UpdateEdge)
		v1.DELETE("/bom", bomH.RemoveEdge)
		v1.GET("/bom/required", bomH.RequiredSupplies)
		v1.GET("/bom/available", bomH.CheckAvailability)
		v1.POST("/bom/consume", bomH.Consume)

		v1.POST("/supplies", suppliesH.CreateSupply)
		v1.GET("/supplies", suppliesH.ListSupplies)
		v1.GET("/supplies/:id", suppliesH.GetSupply)
		v1.POST("/supplies/:id/movements", suppliesH.RegisterSupplyMovement)
		v1.GET("/supplies/:id/movements", suppliesH.ListSupplyMovements)

		v1.POST("/products", productsH.CreateProduct)
		v1.GET("/products", productsH.ListProducts)
		v1.GET("/products/:id", productsH.GetProduct)
		v1.GET("/products/:id/bom", productsH.ListProductBom)
		v1.POST("/products/:id/movements", productsH.RegisterProductMovement)
		v1.GET("/products/:id/movements", productsH.ListProductMovements)
		v1.GET("/price/:sku", productsH.GetPrice)

		v1.POST("/production-orders", productionH.CreateProductionOrder)
		v1.GET("/production-orders", productionH.ListProductionOrders)
		v1.GET("/production-orders/:id", productionH.GetProductionOrder)
		v1.PUT("/production-orders/:id/status", productionH.UpdateProductionStatus)

		v1.POST("/clients", directoryH.CreateClient)
		v1.GET("/clients", directoryH.ListClients)
		v1.POST("/users", directoryH.CreateUser)
		v1.GET("/users", directoryH.ListUsers)

		v1.POST("/commands", commandsH.Execute)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, pool
}
