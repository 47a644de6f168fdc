package serve

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

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"nathanbeddoewebdev/subdns/internal/api"
	"nathanbeddoewebdev/subdns/internal/app"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// NewCommand returns the "serve" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the DNS submission HTTP API",
		Long: `Run the HTTP API that lists configured domains and creates DNS records.

Routes:
  GET  /api/domains      domains available for new records
  POST /api/create-dns   create <subdomain>.<domain>
  GET  /healthz          liveness and maintenance state
  GET  /metrics          Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  subdns serve
  subdns serve --port 9090`,
		Args:         cobra.NoArgs,
		RunE:         runServe,
		SilenceUsage: true,
	}

	cmd.Flags().String("port", "", "Listen port (default: $PORT or 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	a, err := app.New(app.Options{Store: auth.DefaultStore(), Verbose: verbose})
	if err != nil {
		return err
	}
	defer a.Close()

	port, _ := cmd.Flags().GetString("port")
	if port == "" {
		port = a.Config.Port
	}

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", port, err)
	}

	handler := api.NewServer(a.Service,
		api.WithLogger(a.Log),
		api.WithMetrics(a.Metrics),
	).Handler()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, ln, handler, a.Log)
}

// serve runs handler on ln until ctx is done, then drains in-flight
// requests for up to shutdownTimeout.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, log logr.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
