// Command partnerdesk is the terminal client for the partnership registry:
// browse the public directory, register and sign in, and moderate pending
// accounts as an admin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"partnerdesk/internal/account"
	acctmetrics "partnerdesk/internal/account/metrics"
	"partnerdesk/internal/account/session"
	"partnerdesk/internal/api"
	"partnerdesk/internal/cli"
	"partnerdesk/internal/platform/config"
	"partnerdesk/internal/platform/httpserver"
	"partnerdesk/internal/platform/logger"
	platformredis "partnerdesk/internal/platform/redis"
	"partnerdesk/internal/registrymock"
	"partnerdesk/pkg/platform/circuit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "partnerdesk:", err)
		os.Exit(1)
	}
}

func run() error {
	useMock := flag.Bool("mock", false, "serve an embedded seeded registry mock and connect to it")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if *useMock {
		registry := registrymock.New(registrymock.WithLogger(log))
		registrymock.SeedDemo(registry)

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("start embedded mock: %w", err)
		}
		srv := httpserver.New("", registry)
		g.Go(func() error {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
		cfg.APIBaseURL = "http://" + ln.Addr().String()
		log.Info("embedded registry mock up", "addr", ln.Addr().String())
	}

	breaker := circuit.New("registry",
		circuit.WithFailureThreshold(5),
		circuit.WithCooldown(10*time.Second),
	)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout,
		api.WithLogger(log),
		api.WithBreaker(breaker),
	)

	var sessions session.Store = session.NewInMemory()
	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedis(rdb.Client)
		log.Info("using redis session store")
	}

	metrics := acctmetrics.New()
	accounts := account.NewService(client, sessions,
		account.WithLogger(log),
		account.WithMetrics(metrics),
	)
	resolver := account.NewResolver(client, nil,
		account.WithResolverLogger(log),
		account.WithResolverMetrics(metrics),
		account.WithSettleDelay(cfg.SettleDelay),
	)
	defer resolver.Stop()

	repl := cli.New(cli.Config{
		Client:   client,
		Accounts: accounts,
		Resolver: resolver,
		PageSize: cfg.PageSize,
		Logger:   log,
	}, os.Stdout)

	if cfg.MetricsAddr != "" {
		srv := httpserver.New(cfg.MetricsAddr, promhttp.Handler())
		g.Go(func() error {
			log.Info("metrics listener up", "addr", cfg.MetricsAddr)
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

	g.Go(func() error {
		defer stop()
		return repl.Run(ctx, os.Stdin)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
