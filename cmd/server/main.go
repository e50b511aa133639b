package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewai/internal/ai"
	"interviewai/internal/api"
	"interviewai/internal/config"
	"interviewai/internal/db"
	"interviewai/internal/events"
	"interviewai/internal/logging"
	"interviewai/internal/repository"
	"interviewai/internal/storage"
	"interviewai/internal/stt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	llm := ai.NewClient(client, cfg.ChatModel, log)

	deps := api.Dependencies{
		Questions: ai.NewQuestionGenerator(llm),
		Answers:   ai.NewAnswerEvaluator(llm),
		Final:     ai.NewFinalEvaluator(llm),
		STT:       stt.CreateProvider(cfg, client, log),
		Uploads:   storage.NewUploadStore(cfg.UploadDir, log),
		Log:       log,
	}

	// Persistence and events are optional; the API works without them.
	if cfg.DBDriver != "" {
		conn, err := db.Open(cfg.DBDriver, cfg.DBDSN, log)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize database, continuing without persistence")
		} else {
			defer db.Close(conn)
			deps.Store = repository.NewGormRepository(conn, log)
		}
	} else {
		log.Info("DB_DRIVER not set, running without persistence")
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue, log)
		if err != nil {
			log.WithError(err).Warn("Failed to connect to RabbitMQ, continuing without events")
		} else {
			defer publisher.Close()
			deps.Publisher = publisher
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLogger(log), api.CORSMiddleware())
	api.RegisterRoutes(r, api.NewHandler(deps))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	go func() {
		log.Infof("AI interview backend running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return
	}

	log.Info("Server exited")
}
