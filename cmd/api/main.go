package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"undulcito/internal/adapter/api"
	"undulcito/internal/adapter/api/handler"
	apimiddleware "undulcito/internal/adapter/api/middleware"
	"undulcito/internal/adapter/api/router"
	"undulcito/internal/adapter/repository"
	"undulcito/internal/infrastructure/exchangerate"
	"undulcito/internal/infrastructure/firebase"
	"undulcito/internal/infrastructure/ratelimit"
	"undulcito/internal/infrastructure/storage"
	"undulcito/internal/infrastructure/websocket"
	"undulcito/internal/usecase"
	"undulcito/pkg/config"
	"undulcito/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt, err := firebase.ClientOption(cfg)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		logger.Error("Failed to initialize Firebase: %v", err)
		os.Exit(1)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Error("Failed to initialize Firebase Auth: %v", err)
		os.Exit(1)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		logger.Error("Failed to create Firestore client: %v", err)
		os.Exit(1)
	}
	defer firestoreClient.Close()

	imageHost, closeHost, err := storage.NewImageHost(ctx, cfg, opt)
	if err != nil {
		logger.Error("Failed to initialize image host: %v", err)
		os.Exit(1)
	}
	defer closeHost()

	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	rates := exchangerate.NewFetcher(cfg.RatePrimaryURL, cfg.RateFallbackURL, cfg.RateTimeout)

	catalogUseCase := usecase.NewCatalogUseCase(productRepo, categoryRepo)
	cartUseCase := usecase.NewCartUseCase(
		productRepo,
		rates,
		usecase.NewCheckoutComposer(cfg.StoreName, cfg.MerchantPhone),
		cfg.CartIdleTTL,
	)
	adminUseCase := usecase.NewAdminUseCase(productRepo, categoryRepo, imageHost)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo)
	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, cfg.AdminEmails)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	stopCatalog, err := catalogUseCase.Start(ctx)
	if err != nil {
		logger.Error("Failed to start catalog: %v", err)
		os.Exit(1)
	}
	defer stopCatalog()
	stopBroadcast := catalogUseCase.Listen(handler.BroadcastCatalog(wsManager))
	defer stopBroadcast()

	cartUseCase.StartEviction(ctx, 10*time.Minute)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine(ctx)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, apimiddleware.CartSessionHeader},
		ExposeHeaders:    []string{apimiddleware.CartSessionHeader, "Retry-After"},
		AllowCredentials: false,
	}))

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.ErrorHandler

	router.Setup(e, router.Handlers{
		Health:    handler.NewHealthHandler(firebaseAuthClient, catalogUseCase.Ready),
		Catalog:   handler.NewCatalogHandler(catalogUseCase),
		Cart:      handler.NewCartHandler(cartUseCase),
		Review:    handler.NewReviewHandler(reviewUseCase),
		Rate:      handler.NewRateHandler(rates),
		Auth:      handler.NewAuthHandler(authUseCase),
		Admin:     handler.NewAdminHandler(adminUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, catalogUseCase),
	}, router.Middlewares{
		Auth:        apimiddleware.NewAuthMiddleware(authUseCase),
		Admin:       apimiddleware.NewAdminMiddleware(authUseCase),
		RateLimit:   apimiddleware.NewRateLimitMiddleware(limiter),
		CartSession: apimiddleware.NewCartSessionMiddleware(cartUseCase, cfg.CartIdleTTL, !cfg.IsDevelopment()),
	})

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
