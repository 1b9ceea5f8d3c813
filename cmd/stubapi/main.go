package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/stubapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	addr := os.Getenv("STUB_API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8089"
	}
	loanDays := stubapi.DefaultLoanDays
	if v := os.Getenv("LOAN_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			log.Fatalf("invalid LOAN_DAYS: %s", v)
		}
		loanDays = days
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	user, admin, err := stubapi.DevTokens([]byte(secret), 24*time.Hour)
	if err != nil {
		logger.Fatal("Failed to issue dev tokens", zap.Error(err))
	}
	logger.Info("Dev tokens (valid 24h)", zap.String("user", user), zap.String("admin", admin))

	srv := stubapi.New(stubapi.Options{Secret: []byte(secret), LoanDays: loanDays, Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Stub API shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Stub library API listening", zap.String("addr", addr))
	if err := srv.Start(addr); err != nil {
		logger.Fatal("Stub library API failed", zap.Error(err))
	}
}
