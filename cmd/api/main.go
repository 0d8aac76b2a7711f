package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bowlnow/crm/internal/auth"
	authStore "github.com/bowlnow/crm/internal/auth/store"
	"github.com/bowlnow/crm/internal/boost"
	boostStore "github.com/bowlnow/crm/internal/boost/store"
	"github.com/bowlnow/crm/internal/client"
	clientStore "github.com/bowlnow/crm/internal/client/store"
	"github.com/bowlnow/crm/internal/config"
	"github.com/bowlnow/crm/internal/contact"
	contactStore "github.com/bowlnow/crm/internal/contact/store"
	"github.com/bowlnow/crm/internal/database"
	crmHttp "github.com/bowlnow/crm/internal/http"
	authHandler "github.com/bowlnow/crm/internal/http/auth"
	boostHandler "github.com/bowlnow/crm/internal/http/boost"
	clientHandler "github.com/bowlnow/crm/internal/http/client"
	contactHandler "github.com/bowlnow/crm/internal/http/contact"
	dashboardHandler "github.com/bowlnow/crm/internal/http/dashboard"
	exportHandler "github.com/bowlnow/crm/internal/http/export"
	invoiceHandler "github.com/bowlnow/crm/internal/http/invoice"
	onboardingHandler "github.com/bowlnow/crm/internal/http/onboarding"
	revenueHandler "github.com/bowlnow/crm/internal/http/revenue"
	stripeHandler "github.com/bowlnow/crm/internal/http/stripebridge"
	"github.com/bowlnow/crm/internal/invoice"
	invoiceStore "github.com/bowlnow/crm/internal/invoice/store"
	"github.com/bowlnow/crm/internal/logging"
	"github.com/bowlnow/crm/internal/metrics"
	"github.com/bowlnow/crm/internal/onboarding"
	onboardingStore "github.com/bowlnow/crm/internal/onboarding/store"
	"github.com/bowlnow/crm/internal/payments"
	"github.com/bowlnow/crm/internal/revenue"
	revenueStore "github.com/bowlnow/crm/internal/revenue/store"
	"github.com/bowlnow/crm/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplyMigrations(ctx, db, migrations.Files); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	m := metrics.Registry(cfg.Metrics.Namespace)

	var gateway invoice.Gateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payments.NewStripeGateway(cfg.Stripe.SecretKey, logger, m)
	} else {
		logger.Warn("no stripe secret key configured, invoicing runs local-only")
	}

	var (
		clientService     = client.NewService(clientStore.New(db))
		boostService      = boost.NewService(boostStore.New(db))
		revenueService    = revenue.NewService(revenueStore.New(db))
		invoiceService    = invoice.NewService(invoiceStore.New(db), gateway, clientService, logger)
		onboardingService = onboarding.NewService(onboardingStore.New(db))
		contactService    = contact.NewService(contactStore.New(db))
		authService       = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	if !cfg.Auth.Disabled && cfg.Auth.Secret == "" {
		logger.Error("JWT_SECRET must be set unless AUTH_DISABLED=true")
		os.Exit(1)
	}

	router := crmHttp.New(
		crmHttp.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AuthVerifier:   authService,
			AuthDisabled:   cfg.Auth.Disabled,
			Metrics:        m,
		},
		authHandler.NewHandler(authService),
		clientHandler.NewHandler(clientService),
		boostHandler.NewHandler(boostService),
		revenueHandler.NewHandler(revenueService, clientService),
		invoiceHandler.NewHandler(invoiceService),
		onboardingHandler.NewHandler(onboardingService),
		contactHandler.NewHandler(contactService),
		exportHandler.NewHandler(clientService, revenueService),
		dashboardHandler.NewHandler(clientService),
		stripeHandler.NewHandler(invoiceService, cfg.Stripe.WebhookSecret, logger),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}
}
