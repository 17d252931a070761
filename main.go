package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"wastebank/config"
	"wastebank/middleware"
	"wastebank/realtime"
	"wastebank/routes"
	"wastebank/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatalf("Error loading .env file")
	}

	utils.LoadJWTSecret()

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())

	// /metrics stays off the public surface unless METRICS_IP matches
	r.GET("/metrics", func(c *gin.Context) {
		metricsIP := os.Getenv("METRICS_IP")
		if metricsIP != "" && c.ClientIP() != metricsIP {
			c.AbortWithStatus(403)
			return
		}
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	location, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		fmt.Println("Failed to load timezone:", err)
		return
	}
	s := gocron.NewScheduler(location)
	s.Every(1).Day().At("01:01").Do(utils.CleanupExpiredData)
	s.StartAsync()

	config.ConnectDatabase()

	go realtime.Notifications.Run()

	routes.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r.Run(":" + port)
}
