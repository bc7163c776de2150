package main

import (
	"context"
	"embed"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joy095/booking/badwords"
	"github.com/joy095/booking/config"
	"github.com/joy095/booking/config/db"
	redisclient "github.com/joy095/booking/config/redis"
	"github.com/joy095/booking/logger"
	"github.com/joy095/booking/middlewares/cors"
	"github.com/joy095/booking/routes"
	"github.com/joy095/booking/utils/mail"
)

//go:embed templates/email/*
var embeddedEmailTemplates embed.FS

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redisclient.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	mail.InitTemplates(embeddedEmailTemplates)
	logger.InfoLogger.Info("Email templates initialized")

	if err := badwords.LoadBadWords("badwords/en.txt"); err != nil {
		logger.WarnLogger.Warnf("Bad words list not loaded, content screening disabled: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterPropertyRoutes(r)
	routes.RegisterBookingRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "ok from booking service"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Booking service listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Errorf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.InfoLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}
	logger.InfoLogger.Info("Server stopped")
}
