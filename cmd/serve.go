package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				cfg.ListenAddr = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, newClient(cmd), cfg.ListenAddr)
		},
	}
	cmd.Flags().String("listen", "", "listen address (overrides listen_addr)")
	return cmd
}

// serve runs the poller and the HTTP server until ctx is cancelled.
func serve(ctx context.Context, client *engine.Client, addr string) error {
	gin.SetMode(gin.ReleaseMode)

	poller := engine.NewPoller(client, client.BaseURL())
	srv := web.NewServer(poller, client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := poller.Run(ctx); err != nil {
			log.Printf("poller: %v", err)
		}
	}()
	go srv.Run(ctx)

	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	log.Printf("polling %s every %s", client.BaseURL(), poller.Interval())
	log.Printf("dashboard listening on http://%s", addr)

	select {
	case err := <-errCh:
		poller.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Printf("shutting down")
		poller.Stop()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
