package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/favorite"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/shelf"
)

const maxBodyBytes = 1 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookshelf: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		return err
	}
	defer closeRepo()
	logger.Info("catalog store connected", zap.String("backend", cfg.Catalog.Backend))

	loader := catalog.NewLoader(repo, cfg.Catalog.Collection, logger.Named("catalog"))
	defer loader.Close()
	loader.RefreshAsync()

	shelfStore := shelf.NewStore(
		shelf.WithLoanPeriod(cfg.LoanPeriod),
		shelf.WithLogger(logger.Named("shelf")),
	)
	shelfStore.Subscribe(func(s shelf.Shelf) {
		logger.Debug("shelf progress",
			zap.Int("borrowed", s.Len()),
			zap.Int("capacity", shelf.Capacity),
		)
	})

	catalogService := catalog.NewService(loader, favorite.NewSet())
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(ctx, repo, catalogService, shelfStore, cfg, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(ctx context.Context, store catalog.Store, catalogService *catalog.Service, shelfStore *shelf.Store, cfg config.Config, logger *zap.Logger) http.Handler {
	bookHandler := catalog.NewHTTPHandler(catalogService, shelfStore)
	shelfHandler := shelf.NewHTTPHandler(shelfStore, catalogService)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			http.Error(w, "catalog store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/books", bookHandler.List)
	router.HandleFunc("GET /v1/books/{id}", bookHandler.Get)
	router.HandleFunc("POST /v1/books/{id}/favorite", bookHandler.ToggleFavorite)

	router.HandleFunc("GET /v1/shelf", shelfHandler.List)
	router.HandleFunc("POST /v1/shelf", shelfHandler.Borrow)
	router.HandleFunc("DELETE /v1/shelf/{id}", shelfHandler.Return)

	limiter := httpx.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst,
		httpx.WithTrustedProxies(cfg.TrustedProxies...),
	)

	return httpx.Chain(router,
		httpx.RequestID,
		httpx.Logging(logger.Named("http")),
		httpx.Recovery(logger.Named("http")),
		httpx.SecurityHeaders(cfg.EnableHSTS),
		limiter.Middleware,
		httpx.CORS(cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimit(maxBodyBytes),
	)
}
