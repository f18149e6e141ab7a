// README: Entry point; loads config, wires module services, runs the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"packpal/internal/ai"
	"packpal/internal/config"
	httptransport "packpal/internal/http"
	"packpal/internal/infra"
	"packpal/internal/logging"
	"packpal/internal/maps"
	"packpal/internal/modules/matching"
	"packpal/internal/modules/notification"
	"packpal/internal/modules/parcel"
	"packpal/internal/modules/pricing"
	"packpal/internal/modules/travel"
	"packpal/internal/modules/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging.Dir)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("PACKPAL_FIREBASE_PROJECT_ID is required")
	}
	fb, err := infra.NewFirebase(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	userStore := user.NewStore(dbPool)

	notificationSvc := notification.NewService(
		notification.NewStore(dbPool),
		userStore,
		notification.NewFCMPusher(fb.Messaging),
		logger,
	)

	// Geocoding and content classification are optional enrichments; the
	// submission flow degrades gracefully when the keys are absent.
	var geocoder parcel.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		geocoder = g
	}
	var suggester parcel.ContentSuggester
	if cfg.AI.GeminiKey != "" {
		classifier, err := ai.NewClassifier(ctx, cfg.AI.GeminiKey)
		if err != nil {
			logger.Fatal("gemini init", zap.Error(err))
		}
		defer classifier.Close()
		suggester = classifier
	}

	pendingIndex := matching.NewStore(redisClient)
	parcelStore := parcel.NewStore(dbPool)
	parcelSvc := parcel.NewService(parcelStore, geocoder, suggester, pendingIndex, notificationSvc, logger)

	travelStore := travel.NewStore(dbPool)
	travelSvc := travel.NewService(travelStore)

	matchingSvc := matching.NewService(parcelStore, travelStore, pricing.NewService(), notificationSvc, pendingIndex, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Parcels:        parcelSvc,
		Matching:       matchingSvc,
		Travels:        travelSvc,
		Notifications:  notificationSvc,
		Users:          userStore,
		Verifier:       fb,
		Log:            logger,
		BrowseRadiusKm: cfg.Browse.DefaultRadiusKm,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server", zap.Error(err))
	}
}
