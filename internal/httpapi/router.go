// Package httpapi serves geofence analysis over HTTP for uploaded timeline exports.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/timeline-detective/internal/contract"
)

// maxUploadBytes bounds the multipart memory used for uploaded exports.
const maxUploadBytes = 64 << 20

// NewRouter builds the gin engine without starting it.
func NewRouter(baseCfg *contract.Config, mgr contract.StoreManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.MaxMultipartMemory = maxUploadBytes

	h := &handler{baseCfg: baseCfg, mgr: mgr}

	r.GET("/health", h.health)

	api := r.Group("/api/v1")
	{
		api.POST("/summary", h.summary)
		api.POST("/analyze", h.analyze)
	}

	return r
}

// Serve runs the API on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, baseCfg *contract.Config, mgr contract.StoreManager) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(baseCfg, mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		contract.LogInfo("🌐 Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
