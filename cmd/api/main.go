package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"learnhub/internal/database"
	"learnhub/internal/notifications"
	"learnhub/internal/payments"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sendgrid/sendgrid-go"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.Println("starting learnhub api")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	nr, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicApp),
		newrelic.ConfigLicense(cfg.NewRelicLicense),
		newrelic.ConfigEnabled(cfg.NewRelicLicense != ""),
	)
	if err != nil {
		log.Fatalf("creating new relic application: %v", err)
	}

	opts := []Option{WithAllowedOrigins(cfg.AllowedOrigins), WithNewRelic(nr)}

	if cfg.StripeKey != "" {
		opts = append(opts, WithPayments(payments.NewStripeGateway(cfg.StripeKey)))
	} else {
		log.Warn("no stripe key configured, paid enrollments are recorded without charging")
	}

	if cfg.SendgridKey != "" {
		opts = append(opts, WithNotifier(notifications.NewSender(sendgrid.NewSendClient(cfg.SendgridKey))))
	}

	server := NewServer(port, db, cfg.JWTKey, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("shutting down server: %v", err)
		}
	}()

	if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	nr.Shutdown(5 * time.Second)
	log.Println("server stopped")
}
