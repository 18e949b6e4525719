package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecocash/internal/config"
	"ecocash/internal/events"
	"ecocash/internal/handlers"
	"ecocash/internal/httpserver"
	"ecocash/internal/ledger"
	"ecocash/internal/logging"
	"ecocash/internal/model"
)

func main() {
	var cfg config.Config
	if err := cfg.ParseFlags(); err != nil {
		fmt.Println("Server configuration error:", err)
		os.Exit(1)
	}

	logg := logging.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publisher events.Publisher
	if cfg.AMQPURL == "" {
		publisher = &events.NoopPublisher{Logg: logg}
	} else {
		producer, err := events.NewAMQPProducer(cfg.AMQPURL, cfg.EventsExchange)
		if err != nil {
			logg.Warn("event broker unavailable, offer events disabled", "error", err)
			publisher = &events.NoopPublisher{Logg: logg}
		} else {
			publisher = producer
		}
	}
	defer publisher.Close()

	dispatcher := events.NewDispatcher(ctx, publisher, 4, logg)
	dispatcher.Start()

	svc := ledger.New(logg, dispatcher)
	if err := svc.Seed(demoUsers()...); err != nil {
		logg.Error("failed to seed users", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewServer(cfg, svc, logg)
	server := httpserver.New(cfg, handler, logg)
	server.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.DigestInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			if err := server.Shutdown(ctx); err != nil {
				os.Exit(1)
			}
			dispatcher.Stop()
			dispatcher.Wait()
			return

		case <-ticker.C:
			logg.Info("marketplace digest",
				"pending", len(svc.ListPendingOffers()),
				"awaiting_liquidation", len(svc.ListAwaitingLiquidation()),
				"completed", len(svc.ListCompleted()),
			)
		}
	}
}

// demoUsers is the fixed roster the demo ships with. Balances are centavos.
func demoUsers() []model.User {
	return []model.User{
		{ID: "u1", Name: "João Silva", Role: model.RoleResident, Balance: 4250},
		{ID: "u2", Name: "Carlos Santos", Role: model.RoleCollector, Balance: 11580},
		{ID: "u3", Name: "Ponto Eco-Recicle", Role: model.RolePoint, Balance: 250000},
	}
}
