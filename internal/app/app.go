package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 5 * time.Second

// Serve runs the HTTP control surface, the preview loop and the optional
// serial shutter until ctx is done or one of them fails.
func Serve(ctx context.Context, w *Wire) error {
	srv, err := w.Server(ctx)
	if err != nil {
		return err
	}
	orch, err := w.Capture(ctx)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              w.Config.HTTP.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.Log.Info("http listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(sctx)
	})
	g.Go(func() error {
		return orch.StartPreview(ctx, w.Frames)
	})
	if shutter := w.Shutter(orch); shutter != nil {
		g.Go(func() error { return shutter.Run(ctx) })
	}
	return g.Wait()
}
