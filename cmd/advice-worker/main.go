package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/advisor"
	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/cli"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting advice-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the advice worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer func() { _ = repo.Close() }()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = amqpClient.Close() }()

	thresholds := advisor.DefaultThresholds()
	thresholds.OverspendThresholdPct = cfg.OverspendThresholdPct
	adv := advisor.New(advisor.WithThresholds(thresholds))

	advice := services.NewAdviceService(repo, repo, repo, adv)
	adviceWorker := worker.NewAdviceWorker(advice)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeExpenseIngested(gctx, func(msg *amqp.ExpenseIngestedMessage) error {
			return adviceWorker.HandleIngestMessage(gctx, msg)
		})
	})

	// Safety net for lost messages: refresh the month in progress on a timer.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := adviceWorker.RefreshCurrentMonth(gctx); err != nil {
					logger.Error("Periodic advice refresh failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
