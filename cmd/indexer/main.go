// One-shot full rebuild of the search indexes from the relational store.
package main

import (
	"log"

	"lanka-news/internal/config"
	"lanka-news/internal/database"
	"lanka-news/internal/search"
	"lanka-news/internal/services"

	"github.com/joho/godotenv"
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

	searchClient := search.NewClient(cfg.Meili)
	if err := searchClient.EnsureIndexes(); err != nil {
		log.Fatal("Failed to configure search indexes:", err)
	}

	if err := services.NewIndexer(db, searchClient).FullReindex(); err != nil {
		log.Fatal("Reindex failed:", err)
	}
}
