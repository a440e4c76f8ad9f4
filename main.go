package main

import (
	"log"
	"time"

	"attempt-engine/internal/config"
	"attempt-engine/internal/db"
	"attempt-engine/internal/event"
	"attempt-engine/internal/handlers"
	"attempt-engine/internal/repository"
	"attempt-engine/internal/service"
	"attempt-engine/internal/upstream"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	defer db.Disconnect()
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, attempt events will not be published")
	}

	// Upstream quiz service client
	quizService := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.UserHeader, cfg.Upstream.Timeout)

	sessionRepo := repository.NewSessionRepository(database)

	var events service.Publisher
	if publisher != nil {
		events = publisher
	}
	attemptService := service.NewAttemptService(sessionRepo, quizService, events)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupAttemptRoutes(r, attemptHandler)

	r.Run(cfg.Server.Host + ":" + cfg.Server.Port)
}

func setupAttemptRoutes(r *gin.Engine, h *handlers.AttemptHandler) {
	sessions := r.Group("/attempt/session")
	sessions.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(401, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})
	{
		// Opening performs the awaited resume-on-load step; no other
		// operation is accepted before it returns.
		sessions.POST("/", h.OpenSession)
		sessions.GET("/:id", h.GetView)

		sessions.POST("/:id/start", h.Start)
		sessions.POST("/:id/answer", h.SelectOption)
		sessions.POST("/:id/next", h.Next)
		sessions.POST("/:id/prev", h.Prev)
		sessions.POST("/:id/jump", h.Jump)
		sessions.POST("/:id/hint", h.ToggleHint)
		sessions.POST("/:id/finish", h.Finish)

		sessions.POST("/:id/review", h.Review)
		sessions.POST("/:id/back", h.BackToResult)
		sessions.POST("/:id/retake", h.Retake)
	}
}
