package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds the graceful shutdown of the server and the
// export workers.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It returns after an interrupt or when
// the parent context is canceled, once in-flight requests and queued
// exports have finished.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ln := deps.Listener
	if ln == nil {
		addr := c.Addr
		if addr == "" {
			addr = deps.Config.Server.Addr
		}
		var err error
		if ln, err = net.Listen("tcp", addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	srv := &http.Server{
		Handler:           deps.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", ln.Addr())

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	deps.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if deps.Shutdown != nil {
		err = errors.Join(err, deps.Shutdown(shutdownCtx))
	}
	return err
}
