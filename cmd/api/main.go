package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4/middleware"

	"wardrobeapi/controllers"
	"wardrobeapi/dbhelper"
	"wardrobeapi/services"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] Could not read .env: %v", err)
	}

	err := sentry.Init(sentry.ClientOptions{
		// empty DSN disables reporting
		Dsn:              os.Getenv("SENTRY_DSN"),
		Environment:      services.GetEnv("ENV", "local"),
		Release:          "wardrobeapi@1.0.0",
		Debug:            false,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	cfg, err := services.LoadAIConfig()
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}

	ctx := context.Background()
	detector, stylist, err := setupCollaborators(ctx, cfg)
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}
	analyzer, err := services.NewClothingAnalyzer(cfg, detector, stylist)
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}

	if analysisCache, err := services.NewAnalysisCache(1000); err != nil {
		log.Printf("[Cache] Analysis cache disabled: %v", err)
	} else {
		analyzer.Cache = analysisCache
	}

	if bucketName := services.GetEnv("R2_BUCKET_NAME", ""); bucketName != "" {
		awsService := &services.AWSService{}
		if err := awsService.InitPresignClient(ctx); err != nil {
			log.Fatalf("Failed to initialize AWS provider: %v", err)
		}
		urlCache, err := services.NewURLCacheService(awsService, bucketName)
		if err != nil {
			log.Fatal("Failed to initialize URL cache service")
		}
		analyzer.Images = services.NewWardrobeImageStore(awsService, urlCache, bucketName)
	}

	if services.GetEnv("DB_HOST", "") != "" {
		db, err := dbhelper.SetupDB()
		if err != nil {
			log.Fatalf("[DB] %v", err)
		}
		analyzer.Usage = &services.GormUsageRecorder{DB: db}
	}

	e := controllers.SetupServer(analyzer)
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	log.Printf("[Server] provider=%s ranker=%s threshold=%.2f", cfg.Provider, cfg.OutfitRanker, cfg.ConfidenceThreshold)
	e.Logger.Fatal(e.Start(":" + services.GetEnv("PORT", "8083")))
}

// setupCollaborators builds the detector and, unless the heuristic ranker is
// selected, uses the same model client as the stylist.
func setupCollaborators(ctx context.Context, cfg services.AIConfig) (services.ClothingDetector, services.OutfitStylist, error) {
	var detector services.ClothingDetector
	var stylist services.OutfitStylist
	switch cfg.Provider {
	case services.ProviderOpenAI:
		client, err := services.NewOpenAIStylist(os.Getenv("OPENAI_API_KEY"), cfg)
		if err != nil {
			return nil, nil, err
		}
		detector, stylist = client, client
	default:
		client, err := services.NewGoogleLLMStylist(ctx, os.Getenv("GOOGLE_API_KEY"), cfg)
		if err != nil {
			return nil, nil, err
		}
		detector, stylist = client, client
	}
	if cfg.OutfitRanker == services.RankerHeuristic {
		stylist = services.NewHeuristicStylist()
	}
	return detector, stylist, nil
}
