// Package main runs the escrow custody service: gRPC, REST gateway, metrics and the custody auditor.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/notify"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/service"
	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/vault"
	"github.com/goodnatureofminers/escrow7000-backend/internal/metrics"
	"github.com/goodnatureofminers/escrow7000-backend/internal/transport"
)

var config struct {
	Owner          string        `long:"owner" env:"ESCROWD_OWNER" description:"owner address, receives fees and resolves disputes" required:"true"`
	Network        string        `long:"network" env:"ESCROWD_NETWORK" description:"address network" choice:"mainnet" choice:"testnet3" choice:"regtest" choice:"simnet" choice:"signet" default:"mainnet"`
	Ledger         string        `long:"ledger" env:"ESCROWD_LEDGER" description:"ledger backend" choice:"memory" choice:"bolt" choice:"clickhouse" default:"memory"`
	BoltPath       string        `long:"bolt-path" env:"ESCROWD_BOLT_PATH" description:"bolt database file" default:"escrow.db"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"ESCROWD_CLICKHOUSE_DSN" description:"clickhouse dsn"`
	EscrowFee      uint64        `long:"escrow-fee" env:"ESCROWD_ESCROW_FEE" description:"initial escrow fee in satoshis" default:"1000"`
	EscrowDuration time.Duration `long:"escrow-duration" env:"ESCROWD_ESCROW_DURATION" description:"initial escrow duration" default:"720h"`
	Addr           string        `long:"addr" env:"ESCROWD_ADDR" description:"grpc addr" default:":8000"`
	RestAddr       string        `long:"rest-addr" env:"ESCROWD_REST_ADDR" description:"rest addr" default:":8001"`
	AuditInterval  time.Duration `long:"audit-interval" env:"ESCROWD_AUDIT_INTERVAL" description:"custody audit interval" default:"1m"`
	AuditWorkers   int           `long:"audit-workers" env:"ESCROWD_AUDIT_WORKERS" description:"parallel ledger reads per audit" default:"4"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	params, err := networkParams(config.Network)
	if err != nil {
		logger.Fatal("Unknown network", zap.Error(err))
	}
	owner, err := transport.ParseAccount(config.Owner, params)
	if err != nil {
		logger.Fatal("Invalid owner address", zap.Error(err))
	}

	storage, err := openStorage(ctx, config.Ledger, logger)
	if err != nil {
		logger.Fatal("Open ledger", zap.Error(err))
	}
	defer func() {
		if err := storage.close(); err != nil {
			logger.Error("Close ledger", zap.Error(err))
		}
	}()

	notifiers := notify.Fanout{notify.NewLogger(logger)}
	if storage.events != nil {
		publisher, err := notify.NewPublisher(storage.events, storage.batch, logger)
		if err != nil {
			logger.Fatal("Init event publisher", zap.Error(err))
		}
		publisher.Start(ctx)
		defer publisher.Stop()
		notifiers = append(notifiers, publisher)
	}

	// Custody is process-local, so it starts out holding what the persisted ledger owes.
	owed, err := service.Liabilities(ctx, storage.ledger, storage.state, config.AuditWorkers)
	if err != nil {
		logger.Fatal("Compute custody liabilities", zap.Error(err))
	}
	logger.Info("Seeding custody", zap.Stringer("held", btcutil.Amount(owed)))
	custody := vault.NewObservedVault(vault.NewCustodyHolding(owed), metrics.NewVault())
	escrowMetrics := metrics.NewEscrowService()
	svc, err := service.NewEscrowService(ctx, owner,
		model.Config{EscrowDuration: config.EscrowDuration, EscrowFee: config.EscrowFee},
		service.Dependencies{
			Ledger:   storage.ledger,
			Store:    storage.state,
			Vault:    custody,
			Notifier: notifiers,
			Metrics:  escrowMetrics,
		}, logger.Named("escrow"))
	if err != nil {
		logger.Fatal("Init escrow service", zap.Error(err))
	}

	auditor, err := service.NewAuditor(svc, escrowMetrics, config.AuditInterval, config.AuditWorkers, logger.Named("auditor"))
	if err != nil {
		logger.Fatal("Init auditor", zap.Error(err))
	}
	go func() {
		if err := auditor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Auditor stopped", zap.Error(err))
		}
	}()

	handler, err := transport.NewEscrowHandler(svc, params, config.AuditWorkers, logger.Named("transport"))
	if err != nil {
		logger.Fatal("Init escrow handler", zap.Error(err))
	}

	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	grpcPrometheus.EnableHandlingTimeHistogram()
	transport.RegisterEscrowServiceServer(grpcServer, handler)
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", config.Addr)
	if err != nil {
		logger.Fatal("net.Listen error", zap.Error(err))
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Fatal("Start GRPC server", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	conn, err := grpc.NewClient(dialTarget(config.Addr),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		logger.Fatal("Dial gRPC server", zap.Error(err))
	}
	defer func() {
		_ = conn.Close()
	}()

	gw := gwruntime.NewServeMux()
	if err := transport.RegisterEscrowRoutes(gw, transport.NewEscrowServiceClient(conn)); err != nil {
		logger.Fatal("Register escrow routes", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", transport.CallerHeader},
	})
	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           corsHandler.Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
