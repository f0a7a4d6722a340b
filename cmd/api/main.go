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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/rolodexhq/rolodex/api/internal/auth"
	"github.com/rolodexhq/rolodex/api/internal/config"
	"github.com/rolodexhq/rolodex/api/internal/database"
	googleclient "github.com/rolodexhq/rolodex/api/internal/google"
	"github.com/rolodexhq/rolodex/api/internal/handler"
	middlewarepkg "github.com/rolodexhq/rolodex/api/internal/middleware"
	"github.com/rolodexhq/rolodex/api/internal/repository"
	"github.com/rolodexhq/rolodex/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	contactsRepo := repository.NewPGXContactsRepository(pool)
	tokensRepo := repository.NewPGXGoogleTokensRepository(pool)
	prefsRepo := repository.NewPGXPreferencesRepository(pool)

	oauthConfig := googleclient.NewOAuthConfig(cfg.Google)
	peopleClient := googleclient.NewClient(oauthConfig)

	authService := service.NewAuthService(usersRepo, jwtManager)
	accountService := service.NewAccountService(usersRepo)
	contactsService := service.NewContactsService(contactsRepo, prefsRepo, cfg.PhoneRegion)
	preferencesService := service.NewPreferencesService(prefsRepo)
	googleService := service.NewGoogleService(tokensRepo, oauthConfig, peopleClient)
	importService := service.NewImportService(contactsRepo, tokensRepo, peopleClient)

	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	contactsHandler := handler.NewContactsHandler(contactsService)
	exportHandler := handler.NewExportHandler(contactsService)
	preferencesHandler := handler.NewPreferencesHandler(preferencesService)
	googleHandler := handler.NewGoogleHandler(googleService, jwtManager)
	importHandler := handler.NewImportHandler(importService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// The consent page redirects here without a bearer token; the OAuth
	// state parameter identifies the user instead.
	e.GET("/google/callback", googleHandler.Callback)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/contacts", contactsHandler.List)
	secured.POST("/contacts", contactsHandler.Create)
	secured.GET("/contacts/:id", contactsHandler.Get)
	secured.PUT("/contacts/:id", contactsHandler.Update)
	secured.DELETE("/contacts/:id", contactsHandler.Delete)
	secured.POST("/contacts/bulk-delete", contactsHandler.BulkDelete)

	secured.POST("/import/google", importHandler.ImportGoogle, middlewarepkg.ImportRateLimiter(cfg.RateLimitImport))
	secured.POST("/import/linkedin", importHandler.ImportLinkedIn, middlewarepkg.ImportRateLimiter(cfg.RateLimitImport))

	secured.GET("/export/csv", exportHandler.ExportCSV)

	secured.GET("/preferences", preferencesHandler.Get)
	secured.PUT("/preferences", preferencesHandler.Update)

	secured.GET("/google/auth", googleHandler.AuthURL)
	secured.GET("/google", googleHandler.Status)
	secured.DELETE("/google", googleHandler.Disconnect)

	secured.DELETE("/account", accountHandler.Delete)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
