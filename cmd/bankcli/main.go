package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sfa-bank-client/config"
	apiClient "sfa-bank-client/internal/adapter/api"
	cliAdapter "sfa-bank-client/internal/adapter/cli"
	fileStorage "sfa-bank-client/internal/adapter/storage/file"
	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present (development convenience)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("api", cfg.API.BaseURL).
		Msg("Starting SFA Bank client")

	// Initialize session storage
	store, err := fileStorage.NewSessionStore(cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session storage")
	}

	// Initialize session service and restore any saved session
	sessionSvc := service.NewSessionService(store, log)
	if err := sessionSvc.Hydrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to restore session")
	}

	// Initialize the API gateway client; the session supplies the token
	client := apiClient.NewClient(cfg.API, sessionSvc, log)
	authAPI := apiClient.NewAuthClient(client)
	accountsAPI := apiClient.NewAccountsClient(client)
	transactionsAPI := apiClient.NewTransactionsClient(client)
	paymentsAPI := apiClient.NewPaymentsClient(client)
	pinsAPI := apiClient.NewPinClient(client)

	// Cancel on Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cliAdapter.NewApp(cliAdapter.Deps{
		Session:      sessionSvc,
		Auth:         authAPI,
		Accounts:     accountsAPI,
		Transactions: transactionsAPI,
		Payments:     paymentsAPI,
		Pins:         pinsAPI,
		Limits:       cfg.Limits,
		Currency:     cfg.Currency,
	}, os.Stdin, os.Stdout, log)

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Client exited with error")
	}
	log.Info().Msg("Goodbye")
}
