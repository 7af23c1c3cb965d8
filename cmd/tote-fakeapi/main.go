// Command tote-fakeapi serves the in-memory list service for local
// development against the tote client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/five82/tote/internal/fakeapi"
	"github.com/five82/tote/internal/logging"
)

const envBotToken = "TOTE_BOT_TOKEN"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	addr := flag.String("addr", "127.0.0.1:3000", "listen address")
	botToken := flag.String("bot-token", os.Getenv(envBotToken), "verify init-data signatures with this bot token (optional)")
	seed := flag.Bool("seed", true, "create sample lists for the default user")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, err := newLogger(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tote-fakeapi: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	srv := fakeapi.New(fakeapi.Options{BotToken: *botToken, Logger: logger})
	if *seed {
		srv.SeedList(fakeapi.DefaultUserID, "Hardware", "Nails", "Wood glue")
		srv.SeedList(fakeapi.DefaultUserID, "Groceries", "Milk", "Bread", "Eggs")
	}

	owner := fakeapi.DefaultUsers[0]
	initData, err := fakeapi.SignInitData(*botToken, tgbotapi.User{
		ID:        owner.ID,
		UserName:  owner.Username,
		FirstName: owner.FirstName,
	}, time.Now().Unix())
	if err != nil {
		logger.Error("sign init data", zap.Error(err))
		return 1
	}
	fmt.Printf("TOTE_API_URL=http://%s/api\nTOTE_INIT_DATA=%s\n", *addr, initData)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	httpSrv := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr), zap.Bool("signed_init_data", *botToken != ""))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
