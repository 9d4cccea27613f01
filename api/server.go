package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/service"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(j *service.Journal, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	engine := gin.New()
	engine.Use(ErrorHandler(log))
	engine.Use(RequestLogger(log))

	h := &TradesHandler{Journal: j}
	h.Register(engine)
	return engine
}

// Serve runs the API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.APIConfig, j *service.Journal, log *zap.Logger) error {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(j, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("api listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("api shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
