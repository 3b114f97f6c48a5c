package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ovenledger/bakehouse-api/docs"
	v1 "github.com/ovenledger/bakehouse-api/internal/api/handler/v1"
	"github.com/ovenledger/bakehouse-api/internal/api/middleware"
	"github.com/ovenledger/bakehouse-api/internal/config"
	"github.com/ovenledger/bakehouse-api/internal/repository"
	"github.com/ovenledger/bakehouse-api/internal/repository/dao"
	"github.com/ovenledger/bakehouse-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	productHandler := s.initProductHandler(db)
	transferHandler := s.initTransferHandler(db)
	saleHandler := s.initSaleHandler(db)
	reportHandler := s.initReportHandler(db)
	s.MountHandlers(authHandler, userHandler, productHandler, transferHandler, saleHandler, reportHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initProductHandler(db *gorm.DB) *v1.ProductHandler {
	productDAO := dao.NewProductDAO(db)
	repo := repository.NewProductRepository(productDAO)
	svc := service.NewInventoryService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewProductHandler(svc, uSvc)

	return handler
}

func (s *Server) initTransferHandler(db *gorm.DB) *v1.TransferHandler {
	transferDAO := dao.NewTransferDAO(db)
	repo := repository.NewTransferRepository(transferDAO)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewTransferService(repo, productRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTransferHandler(svc, uSvc)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB) *v1.SaleHandler {
	saleDAO := dao.NewSaleDAO(db)
	repo := repository.NewSaleRepository(saleDAO)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewSaleService(repo, productRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewSaleHandler(svc, uSvc)

	return handler
}

func (s *Server) initReportHandler(db *gorm.DB) *v1.ReportHandler {
	saleRepo := repository.NewSaleRepository(dao.NewSaleDAO(db))
	productRepo := repository.NewProductRepository(dao.NewProductDAO(db))
	svc := service.NewReportService(saleRepo, productRepo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewReportHandler(svc, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	productHandler *v1.ProductHandler,
	transferHandler *v1.TransferHandler,
	saleHandler *v1.SaleHandler,
	reportHandler *v1.ReportHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/me", userHandler.HandleGetMe)
		users.GET("/users/staff", userHandler.HandleGetStaff)
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	products := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		products.POST("/products", productHandler.HandleCreateProduct)
		products.GET("/products", productHandler.HandleGetProducts)
		products.GET("/products/:productID", productHandler.HandleGetProduct)
		products.PUT("/products/:productID", productHandler.HandleUpdateProduct)
		products.DELETE("/products/:productID", productHandler.HandleDeleteProduct)
		products.POST("/products/:productID/adjust-stock", productHandler.HandleAdjustStock)
		products.POST("/products/:productID/batches", productHandler.HandleCreateBatch)
		products.GET("/products/:productID/batches", productHandler.HandleGetBatches)
		products.DELETE("/products/:productID/batches/:batchID", productHandler.HandleDeleteBatch)
	}

	transfers := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		transfers.POST("/transfers", transferHandler.HandleCreateTransfer)
		transfers.GET("/transfers", transferHandler.HandleGetTransfers)
		transfers.GET("/transfers/:transferID", transferHandler.HandleGetTransfer)
		transfers.POST("/transfers/:transferID/status", transferHandler.HandleUpdateTransferStatus)
	}

	sales := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		sales.POST("/sales", saleHandler.HandleCreateSale)
		sales.GET("/sales", saleHandler.HandleGetSales)
		sales.GET("/sales/:saleID", saleHandler.HandleGetSale)
	}

	reports := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		reports.GET("/reports/sales.xlsx", reportHandler.HandleSalesReport)
		reports.GET("/reports/inventory.xlsx", reportHandler.HandleInventoryReport)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Bakehouse API"
	docs.SwaggerInfo.Description = "Multi-branch bakery management API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
