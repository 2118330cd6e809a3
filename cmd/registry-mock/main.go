// Command registry-mock serves the in-memory partnership registry for local
// development. It starts seeded with an admin account and a small directory
// so the client has something to browse.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"partnerdesk/internal/platform/config"
	"partnerdesk/internal/platform/httpserver"
	"partnerdesk/internal/platform/logger"
	platmetrics "partnerdesk/internal/platform/metrics"
	"partnerdesk/internal/registrymock"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "registry-mock:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := registrymock.New(
		registrymock.WithLogger(log),
		registrymock.WithMetrics(platmetrics.New()),
	)
	registrymock.SeedDemo(registry)

	g, ctx := errgroup.WithContext(ctx)
	servers := []*http.Server{httpserver.New(cfg.MockAddr, registry)}
	log.Info("registry mock listening", "addr", cfg.MockAddr)

	if cfg.MetricsAddr != "" {
		servers = append(servers, httpserver.New(cfg.MetricsAddr, promhttp.Handler()))
		log.Info("metrics listener up", "addr", cfg.MetricsAddr)
	}

	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
	}
	return g.Wait()
}
