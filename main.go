package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/amqp"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/config"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/controllers/healthz"
	v1 "github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/controllers/v1"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/repository"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/router"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "expense-tracker",
	Short: "Budget and spending limit backend of the expense tracker",
	Long: `Serves the budgets API. Budgets, allocations, alerts and spending
limits are stored in a sqlite database, domain events are dispatched in
process and, with AMQP_URL set, published to RabbitMQ.`,
	Version:       router.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = c

		setupLogging(cfg)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive-expired",
	Short: "Archive all active budgets whose period has ended",
	Long: `Archives every ACTIVE budget that has ended, in all workspaces.
Meant to be run periodically, e.g. from a cron job.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return archiveExpired(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, archiveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

// setupLogging configures the global logger. gin uses debug as its
// default mode, we default to release.
func setupLogging(cfg *config.Config) {
	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return models.Connect(cfg.DatabasePath())
}

// publisher builds the event publisher chain. The returned close function
// must be called on shutdown.
func publisher(ctx context.Context, cfg *config.Config) (events.Publisher, func(), error) {
	bus := events.NewBus(cfg.BusConcurrency)
	bus.Subscribe("*", func(_ context.Context, e events.Event) error {
		log.Debug().
			Str("event", e.Name()).
			Str("aggregate", e.AggregateType()).
			Str("aggregateId", e.AggregateID().String()).
			Msg("domain event")
		return nil
	})

	publishers := []events.Publisher{bus}
	closeFn := func() {}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPConnectTries)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to AMQP: %w", err)
		}

		publishers = append(publishers, client)
		closeFn = func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("closing AMQP client")
			}
		}
	}

	instrumented, err := events.NewInstrumented(events.Multi(publishers...), prometheus.DefaultRegisterer)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return instrumented, closeFn, nil
}

func serve(ctx context.Context) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	pub, closePublisher, err := publisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	repos := repository.New(db, pub)
	co := v1.Controller{
		Budgets: service.NewBudgetService(repos.Budgets, repos.Allocations, repos.Alerts, service.UTC),
		Limits:  service.NewSpendingLimitService(repos.SpendingLimits),
	}

	r, teardown, err := router.Config(*cfg)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(co, healthz.Controller{DB: db}, r.Group("/"), router.Options{EnablePprof: cfg.EnablePprof})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("version", router.Version()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func archiveExpired(ctx context.Context) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	pub, closePublisher, err := publisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	repos := repository.New(db, pub)
	budgets := service.NewBudgetService(repos.Budgets, repos.Allocations, repos.Alerts, service.UTC)

	archived, err := budgets.ProcessExpiredBudgets(ctx, uuid.Nil)
	log.Info().Int("archived", archived).Msg("archived expired budgets")
	return err
}
