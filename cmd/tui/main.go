package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/broker"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/internal/tui"
	"github.com/spec-kit/ticket-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logFile := pflag.String("log-file", "ticket-tracker.log", "write logs here; the terminal is used by the screen")
	noSeed := pflag.Bool("no-seed", !cfg.Store.Seed, "start with an empty ticket list")
	pflag.Parse()

	// stdout belongs to the screen, so logs never go there.
	loggerCfg := cfg.Logger
	loggerCfg.Output = *logFile
	logger, err := observability.NewLogger(loggerCfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := broker.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var seed []domain.Ticket
	if !*noSeed {
		seed = repository.DefaultSeed()
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	var relay *events.RedisRelay
	if redis.Enabled() {
		relay = events.NewRedisRelay(redis, cfg.Redis.EventsChannel, logger)
	}
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger, cfg.Notification), relay)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(seed),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program := tea.NewProgram(tui.NewModel(ctx, ticketService), tea.WithAltScreen(), tea.WithContext(ctx))
	logger.Info("ticket screen started", zap.Int("tickets", len(seed)))
	if _, err := program.Run(); err != nil {
		logger.Error("ticket screen failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ticket screen: %v\n", err)
		os.Exit(1)
	}
	logger.Info("ticket screen closed")
}
