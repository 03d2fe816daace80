package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmorgan81/artistry/internal/handle"
	"github.com/dmorgan81/artistry/internal/inject"
	"github.com/dmorgan81/artistry/internal/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page and generate endpoint over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			injector := inject.Setup(ctx)
			defer func() { _ = injector.Shutdown() }()

			return serve(ctx, injector)
		},
	}
}

func serve(ctx context.Context, injector *do.Injector) error {
	ln, err := net.Listen("tcp", ":"+do.MustInvokeNamed[string](injector, "port"))
	if err != nil {
		return err
	}
	return serveListener(ctx, do.MustInvoke[*handle.HTTPHandler](injector), ln)
}

// serveListener serves until ctx is done, then drains in-flight requests.
// Request contexts keep the logger from ctx but not its cancellation.
func serveListener(ctx context.Context, handler *handle.HTTPHandler, ln net.Listener) error {
	log := log.FromContextOrDiscard(ctx)

	srv := &http.Server{
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
