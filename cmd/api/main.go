// @title        Microblog API
// @version      1.0
// @description  Write-time fan-out microblog service
// @BasePath     /api/v1
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tareqmn/microblog/docs"
	"github.com/tareqmn/microblog/internal/config"
	"github.com/tareqmn/microblog/internal/follow"
	"github.com/tareqmn/microblog/internal/ident"
	"github.com/tareqmn/microblog/internal/post"
	"github.com/tareqmn/microblog/internal/session"
	"github.com/tareqmn/microblog/internal/store"
	"github.com/tareqmn/microblog/internal/timeline"
	"github.com/tareqmn/microblog/internal/user"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Connect to the key-value store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	kv, err := store.Dial(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("Failed to connect to store: %v", err)
	}
	defer kv.Close()

	logger.Info("Connected to store successfully")

	// Shared infrastructure
	allocator := ident.NewAllocator(kv)
	sessions := session.NewService(kv, cfg.SessionTTL)

	// Follow graph
	followRepo := follow.NewRepository(kv)

	// User directory
	userRepo := user.NewRepository(kv)
	followService := follow.NewService(followRepo, userRepo)
	userService := user.NewService(userRepo, allocator, followService)
	userHandler := user.NewHandler(userService, sessions)
	followHandler := follow.NewHandler(followService)

	// Posts and timelines
	postRepo := post.NewRepository(kv)
	postService := post.NewService(postRepo, allocator)
	timelineRepo := timeline.NewRepository(kv)
	engine := timeline.NewEngine(timelineRepo, postService, followService, logger)
	reader := timeline.NewReader(timelineRepo, postService)
	timelineHandler := timeline.NewHandler(engine, reader)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		// Everything else needs a session
		r.Group(func(r chi.Router) {
			r.Use(sessions.Middleware(logger))
			r.Mount("/users", userHandler.Routes())
			r.Mount("/follow", followHandler.Routes())
			r.Mount("/posts", timelineHandler.PostRoutes())
			r.Mount("/timeline", timelineHandler.Routes())
		})
	})

	logger.Infof("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
