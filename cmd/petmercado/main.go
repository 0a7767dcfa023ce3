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

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/petmercado/petmercado/internal/adapter/fsm"
	"github.com/petmercado/petmercado/internal/adapter/otel"
	riveradapter "github.com/petmercado/petmercado/internal/adapter/river"
	"github.com/petmercado/petmercado/internal/adapter/sqlite"
	"github.com/petmercado/petmercado/internal/app"
	"github.com/petmercado/petmercado/internal/domain"

	handler "github.com/petmercado/petmercado/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "petmercado.db")

	ctx := context.Background()

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return err
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return err
	}
	defer store.Close()

	riverClient, err := riveradapter.Setup(ctx, db)
	if err != nil {
		return err
	}
	if err := riverClient.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			log.Printf("river shutdown: %v", err)
		}
	}()

	records := otel.NewTracingRecordRepository(store.Records())
	publisher := otel.NewTracingPublisher(riveradapter.NewPublisher(riverClient))

	// --- Application ---
	lifecycle := app.NewLifecycleService(records, fsm.New(), publisher, domain.DefaultCommissions)
	rating := app.NewRatingService(records, store.Providers(), store.Ratings())
	search := app.NewSearchService(store.Providers())
	provider := app.NewProviderService(store.Providers())

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("petmercado", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("petmercado", "0.1.0"))
	handler.Register(api, handler.Services{
		Lifecycle: lifecycle,
		Rating:    rating,
		Search:    search,
		Providers: provider,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("petmercado listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
