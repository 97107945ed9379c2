package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-coffee-ops/internal/handler"
	"go-coffee-ops/internal/middleware"
	"go-coffee-ops/internal/model"
	"go-coffee-ops/internal/repository"
	"go-coffee-ops/internal/service"
	"go-coffee-ops/internal/ws"
	"go-coffee-ops/pkg/database"
	pkgjwt "go-coffee-ops/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.Tenant{}, &model.Customer{}, &model.Product{}, &model.Order{}, &model.OrderItem{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	tenantRepo := repository.NewTenantRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	reportRepo := repository.NewReportRepo(db)

	authService := service.NewAuthService(tenantRepo)
	customerService := service.NewCustomerService(customerRepo, db)
	productService := service.NewProductService(productRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, db, wsHub)
	importService := service.NewImportService(customerRepo, productRepo, productService, orderService)
	reportService := service.NewReportService(reportRepo)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService, importService)
	productHandler := handler.NewProductHandler(productService, importService)
	orderHandler := handler.NewOrderHandler(orderService, importService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Coffee Ops API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{"error": "Too many requests. Please try again later."})
		},
	}))

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require an authenticated tenant
	protected := api.Group("", middleware.RequireAuth(tenantRepo))

	// Customer Routes
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers", customerHandler.UpdateCustomer)
	protected.Delete("/customers/clear", customerHandler.ClearCustomers)
	protected.Delete("/customers", customerHandler.DeleteCustomer)
	protected.Post("/customers/import", customerHandler.ImportCustomers)

	// Product Routes
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products", productHandler.UpdateProduct)
	protected.Delete("/products/clear", productHandler.ClearProducts)
	protected.Delete("/products", productHandler.DeleteProduct)
	protected.Post("/products/import", productHandler.ImportProducts)

	// Order Routes
	protected.Get("/orders", orderHandler.GetOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Put("/orders", orderHandler.UpdateOrder)
	protected.Delete("/orders", orderHandler.DeleteOrder)
	protected.Post("/orders/import", orderHandler.ImportOrders)

	// Report Routes
	protected.Get("/reports/overview", reportHandler.GetOverview)
	protected.Get("/reports/sales", reportHandler.GetSales)

	// WebSocket Route (token passed as query param for browser clients)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		claims, err := pkgjwt.ValidateToken(c.Query("token"))
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		c.Locals("tenant_id", claims.TenantID)
		return c.Next()
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		tenantID, ok := c.Locals("tenant_id").(uuid.UUID)
		if !ok {
			c.Close()
			return
		}
		wsHub.Register <- ws.Session{Conn: c, TenantID: tenantID}
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
