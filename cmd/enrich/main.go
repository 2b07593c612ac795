// One-shot enrichment batch over unenriched articles.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"lanka-news/internal/config"
	"lanka-news/internal/database"
	"lanka-news/internal/enrich"
	"lanka-news/internal/llm"

	"github.com/joho/godotenv"
)

func main() {
	limit := flag.Int("limit", 50, "maximum number of articles to enrich")
	pause := flag.Duration("pause", 2*time.Second, "pause between provider calls")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	enricher := enrich.NewEnricher(db, llm.NewClient(cfg.LLM), llm.NewEmbedder(cfg.Embedding))

	enriched, failed, err := enricher.EnrichPending(context.Background(), *limit, *pause)
	if err != nil {
		log.Fatal("Enrichment batch failed:", err)
	}
	log.Printf("Done: %d enriched, %d failed", enriched, failed)
}
