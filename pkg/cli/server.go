package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hooklinehq/hookline/pkg/config"
	"github.com/hooklinehq/hookline/pkg/core"
	"github.com/hooklinehq/hookline/pkg/executor"
	"github.com/hooklinehq/hookline/pkg/jwt"
	"github.com/hooklinehq/hookline/pkg/models"
	"github.com/hooklinehq/hookline/pkg/probes"
	"github.com/hooklinehq/hookline/pkg/public"
	"github.com/hooklinehq/hookline/pkg/workers/retention"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the hookline HTTP server and background workers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return runServer(cmd.Context(), cfg)
	},
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			log.Warnf("failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := connectDatabase(cfg); err != nil {
		return err
	}

	if err := models.Migrate(); err != nil {
		return err
	}

	if err := models.SeedPlatforms(cfg.Platforms.SeedFile); err != nil {
		return err
	}

	httpCtx := core.NewHTTPContext()

	var exec executor.Executor = executor.Noop{}
	if cfg.Executor.URL != "" {
		exec = executor.NewHTTP(cfg.Executor.URL, httpCtx, cfg.Executor.Timeout)
	}

	server := public.NewServer(
		&public.DatabaseStore{BaseURL: "http://" + cfg.Server.Addr()},
		exec,
		probes.NewRunner(httpCtx, probes.DatabaseConfigSource{}, probes.DatabaseInsightSink{}, cfg.Probes.Timeout),
		probes.NewConsole(httpCtx, cfg.Probes.Timeout),
		jwt.NewSigner(cfg.Auth.TokenSecret),
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Infof("listening on %s", cfg.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		worker := retention.NewWorker(cfg.Retention.Schedule, cfg.Retention.DeliveryLogMaxAge)
		return worker.Start(ctx)
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
