// Package worker runs the background loops: periodic article enrichment
// and search-index synchronization.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"lanka-news/internal/config"
	"lanka-news/internal/enrich"
	"lanka-news/internal/services"
)

// Pause between provider calls inside one enrichment batch. Providers
// rate-limit; per-call timeouts and failure isolation live in enrich.
const enrichPause = 2 * time.Second

// Service manages the background workers
type Service struct {
	enricher *enrich.Enricher
	indexer  *services.Indexer
	cfg      config.WorkerConfig

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewService creates a worker service
func NewService(enricher *enrich.Enricher, indexer *services.Indexer, cfg config.WorkerConfig) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		enricher: enricher,
		indexer:  indexer,
		cfg:      cfg,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the background loops
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	log.Println("Starting background workers...")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runEnrichLoop()
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runIndexSyncLoop()
	}()
}

// Stop cancels the loops and waits for them to finish
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	log.Println("Stopping background workers...")
	s.cancel()
	s.wg.Wait()
	s.running = false
}

func (s *Service) runEnrichLoop() {
	ticker := time.NewTicker(s.cfg.EnrichInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			enriched, failed, err := s.enricher.EnrichPending(s.ctx, s.cfg.EnrichBatchSize, enrichPause)
			if err != nil {
				log.Printf("Enrichment batch error: %v", err)
				continue
			}
			if enriched > 0 || failed > 0 {
				log.Printf("Enrichment batch: %d enriched, %d failed", enriched, failed)
			}
		}
	}
}

func (s *Service) runIndexSyncLoop() {
	ticker := time.NewTicker(s.cfg.IndexSyncInterval)
	defer ticker.Stop()

	// Overlap each window by a minute; upserts make replays harmless.
	lastSync := time.Now().Add(-time.Hour)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			since := lastSync.Add(-time.Minute)
			lastSync = time.Now()
			if err := s.indexer.SyncSince(since); err != nil {
				log.Printf("Index sync error: %v", err)
			}
		}
	}
}
