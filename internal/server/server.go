// Package server assembles the HTTP API: services, handlers, middleware and
// routes. cmd/api and the end-to-end tests build the same router from here.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"expensetracker/internal/config"
	_ "expensetracker/internal/docs" // Import swagger docs
	"expensetracker/internal/handlers"
	"expensetracker/internal/middleware"
	"expensetracker/internal/services"
)

// Services bundles the business services behind the API.
type Services struct {
	Users           services.UserServicer
	Categories      services.CategoryServicer
	ExpenseCommands services.ExpenseCommandServicer
	ExpenseQueries  services.ExpenseQueryServicer
	Audit           services.AuditServicer
}

// NewServices wires every service against db.
func NewServices(db *gorm.DB) *Services {
	categories := services.NewCategoryService(db)
	return &Services{
		Users:           services.NewUserService(db),
		Categories:      categories,
		ExpenseCommands: services.NewExpenseCommandService(db, categories),
		ExpenseQueries:  services.NewExpenseQueryService(db, categories),
		Audit:           services.NewAuditService(db),
	}
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(svc *Services, cfg *config.Config) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	expenseHandler := handlers.NewExpenseHandler(svc.ExpenseCommands, svc.ExpenseQueries, svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/summary", expenseHandler.GetSummary)
	expenses.GET("/categories", expenseHandler.GetCategories)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}
