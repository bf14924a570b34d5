package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"matchpoint-api/app"
	"matchpoint-api/config"
	_ "matchpoint-api/docs" // Swagger docs
	"matchpoint-api/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Matchpoint API
// @version         1.0
// @description     Tennis club match validation and ELO rating service

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	settings := config.LoadSettings()

	r := gin.Default()
	r.Use(cors.Default())

	module := app.NewModule(config.DB, notify.NewLogNotifier(), settings)
	module.SetupRoutes(r)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler)

	if err := module.StartScheduler(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", settings.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	module.StopScheduler()
	if err := srv.Close(); err != nil {
		log.Printf("Server close error: %v", err)
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthHandler(c *gin.Context) {
	c.JSON(200, HealthResponse{
		Message:  "Server is running",
		Database: "connected",
	})
}
