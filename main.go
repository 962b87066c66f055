package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jobplatform/interview_backend/config"
	"github.com/jobplatform/interview_backend/controllers"
	"github.com/jobplatform/interview_backend/database"
	"github.com/jobplatform/interview_backend/docs"
	"github.com/jobplatform/interview_backend/middleware"
	"github.com/jobplatform/interview_backend/websocket"
)

// @title           Interview Request Platform API
// @version         1.0
// @description     REST API for candidate interview requests with live recruiter updates
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	database.Connect(cfg)
	database.Migrate()

	// Initialize handlers
	controllers.Init(cfg)

	// Optional redis: rate limiting and the cross-instance broadcast backplane
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
			rdb = nil
		}
		cancel()
	}
	websocket.InitBackplane(context.Background(), rdb)

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Interview Request Platform API"
	docs.SwaggerInfo.Description = "REST API for candidate interview requests with live recruiter updates"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Set up router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.StructuredLogger())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Rate limiting
	rateLimit := 1000
	if cfg.IsProduction() {
		rateLimit = 100
	}
	router.Use(middleware.RateLimit(rdb, rateLimit, 15*time.Minute, "api"))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Interview request routes
	api := router.Group("/api/interview-requests")
	{
		api.GET("", middleware.ValidateQueryParams(), controllers.GetRequests)
		api.GET("/stats", controllers.GetStats)
		api.GET("/:id", controllers.GetRequestByID)
		api.POST("", middleware.ValidateCreateRequest(), controllers.CreateRequest)
		api.PUT("/:id/accept", controllers.AcceptRequest)
		api.PUT("/:id/reject", controllers.RejectRequest)
		api.DELETE("/:id", controllers.DeleteRequest)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Health check endpoint
	startTime := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).Seconds(),
		})
	})

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Route not found",
			"message": fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}
