package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lanka-news/internal/config"
	"lanka-news/internal/database"
	"lanka-news/internal/enrich"
	"lanka-news/internal/handlers"
	"lanka-news/internal/llm"
	"lanka-news/internal/search"
	"lanka-news/internal/services"
	"lanka-news/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	searchClient := search.NewClient(cfg.Meili)
	if err := searchClient.EnsureIndexes(); err != nil {
		// The site can serve degraded pages without search; don't die.
		log.Printf("Search index setup failed: %v", err)
	}

	enricher := enrich.NewEnricher(db, llm.NewClient(cfg.LLM), llm.NewEmbedder(cfg.Embedding))
	indexer := services.NewIndexer(db, searchClient)
	stories := services.NewStoriesService(db)

	workers := worker.NewService(enricher, indexer, cfg.Worker)
	workers.Start()
	setupGracefulShutdown(workers, db)

	runServer(cfg, db, searchClient, enricher, indexer, stories)
}

func setupGracefulShutdown(workers *worker.Service, db *gorm.DB) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")
		workers.Stop()
		database.Close(db)
		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func runServer(cfg *config.Config, db *gorm.DB, searchClient *search.Client, enricher *enrich.Enricher, indexer *services.Indexer, stories *services.StoriesService) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	searchHandler := handlers.NewSearchHandler(searchClient)
	articlesHandler := handlers.NewArticlesHandler(db, enricher)
	adminHandler := handlers.NewAdminHandler(indexer, stories, enricher, cfg.Server)
	docsHandler := handlers.NewDocsHandler()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "search": searchClient.Healthy()})
	})

	api := r.Group("/api")
	{
		api.GET("/search", searchHandler.Search)
		api.GET("/stories/trending", searchHandler.Trending)
		api.GET("/topics/:topic/articles", searchHandler.ArticlesByTopic)
		api.GET("/sources", searchHandler.Sources)
		api.GET("/articles/latest", articlesHandler.Latest)
		api.GET("/tags/:slug/summary", articlesHandler.PersonSummary)
	}

	admin := r.Group("/admin", adminHandler.Auth())
	{
		admin.POST("/reindex", adminHandler.Reindex)
		admin.POST("/enrich", adminHandler.Enrich)
		admin.POST("/stories/recalculate", adminHandler.RecalculateStories)
	}

	r.GET("/docs/:doc", docsHandler.Serve)

	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}
