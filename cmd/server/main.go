// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	g "github.com/mahabubulhasibshawon/library-borrow/internal/adapters/grpc"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/libraryapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/memory"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/redis"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/stubapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/application"
	"github.com/mahabubulhasibshawon/library-borrow/internal/config"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
	"github.com/mahabubulhasibshawon/library-borrow/migrations"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("failed to load env variables", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	carts, closeCarts, err := openCartStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open cart store", zap.String("store", cfg.CartStore), zap.Error(err))
	}
	defer closeCarts()

	if cfg.UseStubAPI {
		startStubAPI(ctx, cfg, logger)
	}

	api, err := libraryapi.New(cfg.LibraryAPIURL, libraryapi.NewHTTPClient(cfg.LibraryAPITimeout), logger.Named("libraryapi"))
	if err != nil {
		logger.Fatal("Invalid library API configuration", zap.Error(err))
	}

	revocations, closeRevocations, err := openRevocationStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open revocation store", zap.Error(err))
	}
	defer closeRevocations()

	authService := application.NewAuthService([]byte(cfg.JWTSecret), revocations)
	srv := g.NewServer(authService, carts, api, cfg.ShippingFee, logger)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		g.LoggingInterceptor(logger.Named("rpc")),
		g.AuthInterceptor(authService),
	))
	g.RegisterBorrowDeskServer(grpcServer, srv)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(g.ServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()

	logger.Info("gRPC borrow desk listening",
		zap.String("addr", cfg.GRPCAddr),
		zap.String("cart_store", cfg.CartStore),
		zap.String("library_api", cfg.LibraryAPIURL),
	)
	if err := grpcServer.Serve(lis); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}

func openCartStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.CartPersistencePort, func(), error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.CartStore {
	case config.CartStoreRedis:
		store := redis.NewCartStore(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB, cfg.CartTTL)
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.CartStorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewPostgresCartRepository(db), func() { _ = db.Close() }, nil
	}

	logger.Warn("Using in-memory cart store; carts are lost on restart")
	return memory.NewCartStore(), func() {}, nil
}

// openRevocationStore keeps logouts in Redis when it is configured, so they
// survive restarts and are shared between replicas.
func openRevocationStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.RevocationStorePort, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set; logouts are forgotten on restart")
		return memory.NewRevocationStore(), func() {}, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store := redis.NewRevocationStore(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func startStubAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) {
	stub := stubapi.New(stubapi.Options{
		Secret:   []byte(cfg.JWTSecret),
		LoanDays: cfg.LoanDays,
		Logger:   logger.Named("stubapi"),
	})
	if user, admin, err := stubapi.DevTokens([]byte(cfg.JWTSecret), 24*time.Hour); err == nil {
		logger.Info("Stub API dev tokens (valid 24h)", zap.String("user", user), zap.String("admin", admin))
	}

	go func() {
		if err := stub.Start(cfg.StubAPIAddr); err != nil {
			logger.Error("Stub API stopped", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = stub.Shutdown(shutdownCtx)
	}()
	logger.Info("Stub library API listening", zap.String("addr", cfg.StubAPIAddr))
}
