package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/handler"
	"go-resell-sync/internal/middleware"
	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/service"
	"go-resell-sync/internal/ws"
	"go-resell-sync/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Adjustment{}, &model.SyncSettings{})

	rdb := database.ConnectRedis()

	// 3. Clover client (credentials optional; sync endpoints fail fast,
	// sale hooks degrade to no-ops)
	pos := clover.NewClientFromEnv()
	if !pos.Connected() {
		log.Println("Warning: Clover credentials not set; POS sync disabled")
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	adjustmentRepo := repository.NewAdjustmentRepo(db)
	settingsRepo := repository.NewSyncSettingsRepo(db)
	syncLock := repository.NewSyncLock(rdb)

	metrics := service.NewSyncMetrics()

	invService := service.NewInventoryService(productRepo, adjustmentRepo, wsHub)
	syncService := service.NewSyncService(productRepo, adjustmentRepo, settingsRepo, pos, syncLock, wsHub, metrics)
	saleService := service.NewSaleService(productRepo, adjustmentRepo, pos, wsHub, metrics)
	dashService := service.NewDashboardService(productRepo, adjustmentRepo)
	authService := service.NewAuthService()

	invHandler := handler.NewInventoryHandler(invService)
	syncHandler := handler.NewSyncHandler(syncService)
	checkoutHandler := handler.NewCheckoutHandler(saleService)
	webhookHandler := handler.NewWebhookHandler(saleService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Resell Sync v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// Clover webhook (authenticated by signing secret, not admin JWT)
	api.Post("/webhooks/clover",
		middleware.VerifyWebhookSecret(os.Getenv("CLOVER_WEBHOOK_SECRET")),
		webhookHandler.HandleClover)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAdmin())

	// Catalog
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Put("/products/:id", invHandler.UpdateProduct)
	protected.Post("/products/:id/adjust", invHandler.AdjustProduct)
	protected.Get("/products/:id/adjustments", invHandler.GetProductAdjustments)

	// Adjustment audit trail
	protected.Get("/adjustments", invHandler.GetAdjustments)

	// Checkout (called by the storefront backend on completed orders)
	protected.Post("/checkout", checkoutHandler.RecordCheckout)

	// Clover sync
	protected.Post("/sync", syncHandler.TriggerSync)
	protected.Get("/sync/status", syncHandler.GetStatus)

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
