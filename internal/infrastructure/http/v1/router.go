// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/core/entity"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/catalogs/brand"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/customer"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/loantype"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/supplier"
	"backoffice/internal/domain/documents"
	"backoffice/internal/domain/documents/invoice"
	"backoffice/internal/domain/documents/purchase"
	"backoffice/internal/domain/payroll/loan"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/document_repo"
	"backoffice/internal/infrastructure/storage/postgres/loan_repo"
	"backoffice/internal/infrastructure/storage/postgres/stock_repo"
	"backoffice/pkg/logger"
	"backoffice/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager
	Logger    *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	Numerator *numerator.Service
	Auditor   audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, no auth required
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
		registerLoanRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.POST("/register", authHandler.Register)
	admin.GET("/users", authHandler.ListUsers)
}

// catalogService builds the generic service for one catalog entity.
func catalogService[T entity.Validatable](cfg RouterConfig, repo domain.CatalogRepository[T], name string) *domain.CatalogService[T] {
	return domain.NewCatalogService(domain.CatalogServiceConfig[T]{
		Repo:       repo,
		TxManager:  cfg.TxManager,
		EntityName: name,
	})
}

// registerCatalogRoutes registers reference-data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := catalogService[*product.Product](cfg, repo, "product")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
			Service:    service,
			EntityName: "product",
			MapCreateDTO: func(req dto.CreateProductRequest) (*product.Product, error) {
				return req.ToEntity()
			},
			MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) (*product.Product, error) {
				if err := req.ApplyTo(existing); err != nil {
					return nil, err
				}
				return existing, nil
			},
			MapToDTO: func(p *product.Product) any { return dto.FromProduct(p) },
		})
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := catalogService[*customer.Customer](cfg, repo, "customer")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
			Service:    service,
			EntityName: "customer",
			MapCreateDTO: func(req dto.CreateCustomerRequest) (*customer.Customer, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) (*customer.Customer, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(c *customer.Customer) any { return dto.FromCustomer(c) },
		})
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := catalogService[*supplier.Supplier](cfg, repo, "supplier")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
			Service:    service,
			EntityName: "supplier",
			MapCreateDTO: func(req dto.CreateSupplierRequest) (*supplier.Supplier, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) (*supplier.Supplier, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(s *supplier.Supplier) any { return dto.FromSupplier(s) },
		})
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler)
	}

	// --- BRANDS ---
	{
		repo := catalog_repo.NewBrandRepo(cfg.TxManager)
		service := catalogService[*brand.Brand](cfg, repo, "brand")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*brand.Brand, dto.CreateBrandRequest, dto.UpdateBrandRequest]{
			Service:    service,
			EntityName: "brand",
			MapCreateDTO: func(req dto.CreateBrandRequest) (*brand.Brand, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateBrandRequest, existing *brand.Brand) (*brand.Brand, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(b *brand.Brand) any { return dto.FromBrand(b) },
		})
		RegisterCatalogRoutes(catalogs.Group("/brands"), handler)
	}

	// --- CATEGORIES ---
	{
		repo := catalog_repo.NewCategoryRepo(cfg.TxManager)
		service := catalogService[*category.Category](cfg, repo, "category")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
			Service:    service,
			EntityName: "category",
			MapCreateDTO: func(req dto.CreateCategoryRequest) (*category.Category, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) (*category.Category, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(c *category.Category) any { return dto.FromCategory(c) },
		})
		RegisterCatalogRoutes(catalogs.Group("/categories"), handler)
	}

	// --- EMPLOYEES ---
	{
		repo := catalog_repo.NewEmployeeRepo(cfg.TxManager)
		service := catalogService[*employee.Employee](cfg, repo, "employee")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*employee.Employee, dto.CreateEmployeeRequest, dto.UpdateEmployeeRequest]{
			Service:    service,
			EntityName: "employee",
			MapCreateDTO: func(req dto.CreateEmployeeRequest) (*employee.Employee, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateEmployeeRequest, existing *employee.Employee) (*employee.Employee, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(e *employee.Employee) any { return dto.FromEmployee(e) },
		})
		RegisterCatalogRoutes(catalogs.Group("/employees"), handler)
	}

	// --- LOAN TYPES ---
	{
		repo := catalog_repo.NewLoanTypeRepo(cfg.TxManager)
		service := catalogService[*loantype.LoanType](cfg, repo, "loan type")
		handler := handlers.NewCatalogHandler(baseHandler, handlers.CatalogHandlerConfig[*loantype.LoanType, dto.CreateLoanTypeRequest, dto.UpdateLoanTypeRequest]{
			Service:    service,
			EntityName: "loan type",
			MapCreateDTO: func(req dto.CreateLoanTypeRequest) (*loantype.LoanType, error) {
				return req.ToEntity(), nil
			},
			MapUpdateDTO: func(req dto.UpdateLoanTypeRequest, existing *loantype.LoanType) (*loantype.LoanType, error) {
				req.ApplyTo(existing)
				return existing, nil
			},
			MapToDTO: func(t *loantype.LoanType) any { return dto.FromLoanType(t) },
		})
		RegisterCatalogRoutes(catalogs.Group("/loan-types"), handler)
	}
}

// registerDocumentRoutes registers invoice and purchase endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docs := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// Shared dependencies: both document types reconcile against the same
	// stock authority.
	stockRepo := stock_repo.NewStockRepo(cfg.TxManager)
	reconciler := documents.NewReconciler(stockRepo)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)

	// --- INVOICES ---
	{
		repo := document_repo.NewInvoiceRepo(cfg.TxManager)
		service := invoice.NewService(repo, productRepo, reconciler, cfg.Numerator, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewInvoiceHandler(baseHandler, service)
		RegisterDocumentRoutes(docs.Group("/invoices"), handler)
	}

	// --- PURCHASES ---
	{
		repo := document_repo.NewPurchaseRepo(cfg.TxManager)
		service := purchase.NewService(repo, productRepo, stockRepo, reconciler, cfg.Numerator, cfg.TxManager, cfg.Auditor)
		handler := handlers.NewPurchaseHandler(baseHandler, service)
		RegisterDocumentRoutes(docs.Group("/purchases"), handler)
	}
}

// registerLoanRoutes registers payroll loan endpoints.
func registerLoanRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := loan_repo.NewLoanRepo(cfg.TxManager)
	employeeRepo := catalog_repo.NewEmployeeRepo(cfg.TxManager)
	loanTypeRepo := catalog_repo.NewLoanTypeRepo(cfg.TxManager)
	service := loan.NewService(repo, employeeRepo, loanTypeRepo, cfg.TxManager, cfg.Auditor)
	handler := handlers.NewLoanHandler(baseHandler, service)

	loans := rg.Group("/payroll/loans")
	loans.GET("", handler.List)
	loans.POST("", handler.Create)
	loans.GET("/:id", handler.Get)
	loans.PUT("/:id", handler.Update)
	loans.DELETE("/:id", handler.Delete)
	loans.POST("/:id/annul", handler.Annul)
}
