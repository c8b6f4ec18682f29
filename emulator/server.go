package emulator

import (
	"context"
	"net/http"
	"time"
)

var srv *http.Server

// Serve runs the emulator until the listener fails or Close is called.
func Serve(opts ...Option) error {
	engine := NewEngine(opts...)
	srv = &http.Server{
		Addr:    engine.Address,
		Handler: engine,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the emulator down gracefully.
func Close() error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
