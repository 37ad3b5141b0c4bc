package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/pricecart/backend/config"
	httpDelivery "github.com/pricecart/backend/internal/delivery/http"
	"github.com/pricecart/backend/internal/infrastructure/cache"
	"github.com/pricecart/backend/internal/infrastructure/storage"
	"github.com/pricecart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceCart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage DSN: %s", cfg.Storage.DSN)

	// Initialize infrastructure dependencies
	db, err := storage.OpenDB(cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	listingRepo := storage.NewListingRepo(db)
	productRepo := storage.NewProductRepo(db)
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Build the matching engine
	extractor := usecase.NewDescriptorExtractor(usecase.DefaultLexicon())
	scorer := usecase.NewSimilarityScorer(extractor)
	matcher := usecase.NewMatcher(scorer, usecase.MatcherConfig{
		MinSimilarity:      cfg.Matching.MinSimilarity,
		EnableDebugLogging: cfg.Matching.Debug,
	})

	// Seed > 0 makes synthetic pricing reproducible across runs
	var priceSource usecase.PriceSource
	if cfg.Pricing.Seed > 0 {
		priceSource = rand.New(rand.NewSource(cfg.Pricing.Seed))
		log.Printf("Pricing: seeded random source (seed=%d)", cfg.Pricing.Seed)
	}

	aggregator := usecase.NewPriceAggregator(matcher, priceSource, usecase.AggregatorConfig{
		PriceVariance:           cfg.Pricing.Variance,
		AvailabilityProbability: cfg.Pricing.AvailabilityProbability,
	})

	enrichmentService := usecase.NewEnrichmentService(
		listingRepo,
		productRepo,
		memoryCache,
		extractor,
		matcher,
		aggregator,
		usecase.EnrichmentServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Matching.Debug,
		},
	)

	log.Printf("Matching: min_similarity=%.0f, debug=%v", matcher.MinSimilarity(), cfg.Matching.Debug)
	log.Printf("Pricing: variance=%.2f, availability=%.2f", cfg.Pricing.Variance, cfg.Pricing.AvailabilityProbability)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(enrichmentService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
