package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/seo-audit/backend/analyzer"
	"github.com/seo-audit/backend/logging"
	"github.com/seo-audit/backend/middleware"
)

var (
	auditor     *analyzer.Analyzer
	rateLimiter *middleware.RateLimiter
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			logrus.Info("no .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

func main() {
	loadEnv()
	setupGinMode()

	var err error
	auditor, err = analyzer.New(dataDir())
	if err != nil {
		logrus.Fatalf("failed to initialize analyzer: %v", err)
	}
	defer auditor.Shutdown()

	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	stats := logging.Initialize()

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.RequestStats(stats))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/audit", auditSite)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, stats.GetStatistics())
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	logrus.Infof("server starting on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}

func auditSite(c *gin.Context) {
	logrus.Infof("audit request received from: %s", c.ClientIP())

	var request analyzer.AuditRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "URL required",
		})
		return
	}

	c.Set("auditedUrl", request.URL)
	c.Set("withCompetitor", request.CompetitorURL != "")

	result, err := auditor.Audit(c.Request.Context(), request)
	if err != nil {
		if errors.Is(err, analyzer.ErrMissingURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
