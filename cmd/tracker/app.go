package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/feral-file/token-tracker/internal/adapter"
	"github.com/feral-file/token-tracker/internal/authority"
	"github.com/feral-file/token-tracker/internal/config"
	"github.com/feral-file/token-tracker/internal/logger"
	"github.com/feral-file/token-tracker/internal/ratelimit"
	"github.com/feral-file/token-tracker/internal/registry"
	"github.com/feral-file/token-tracker/internal/store"
	"github.com/feral-file/token-tracker/internal/tracker"
)

// app holds the long-lived handles shared by every command
type app struct {
	db      *gorm.DB
	store   store.Store
	checker authority.Checker
	rpc     adapter.RPCClient
	service tracker.Service
	clock   adapter.Clock
}

// newApp opens the database, ensures the schema and wires the tracker service.
// The authority checker is only wired when solana.rpc_url is set.
func newApp(ctx context.Context, cfg *config.TrackerConfig) (*app, error) {
	a := &app{clock: adapter.NewClock()}
	fs := adapter.NewFileSystem()

	engine := store.Engine(cfg.Database.Engine)
	if engine == store.EngineSQLite {
		if err := fs.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Connect to database
	db, err := store.Open(engine, cfg.Database.DSN(), store.NewGormLogger(cfg.Debug))
	if err != nil {
		return nil, err
	}
	a.db = db

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, engine, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("engine", cfg.Database.Engine),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	a.store, err = store.NewStore(ctx, db, store.Options{
		Engine:          engine,
		TxTimeout:       cfg.Database.TxTimeout,
		RetryMaxElapsed: cfg.Database.RetryMaxElapsed,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	// Connect to the Solana RPC node
	if cfg.Solana.RPCURL != "" {
		client, err := adapter.NewRPCDialer().Dial(ctx, cfg.Solana.RPCURL, cfg.Solana.Timeout)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to solana rpc: %w", err)
		}
		a.rpc, err = ratelimit.NewRPCClient("solana", client, ratelimit.Config{
			RequestsPerSecond: cfg.Solana.RequestsPerSecond,
			Burst:             cfg.Solana.Burst,
		})
		if err != nil {
			client.Close()
			a.Close()
			return nil, err
		}
		a.checker = authority.NewChecker(a.rpc, authority.Settings{
			AllowMintAuthority:   cfg.Checks.AllowMintAuthority,
			AllowFreezeAuthority: cfg.Checks.AllowFreezeAuthority,
			Commitment:           cfg.Solana.Commitment,
		})
		logger.InfoCtx(ctx, "Connected to solana rpc",
			zap.String("commitment", cfg.Solana.Commitment),
			zap.Float64("requests_per_second", cfg.Solana.RequestsPerSecond),
		)
	}

	// Load creator denylist
	var denylist registry.CreatorDenylist
	if cfg.DenylistPath != "" {
		denylist, err = registry.NewDenylistLoader(fs).Load(cfg.DenylistPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		logger.InfoCtx(ctx, "Loaded creator denylist", zap.Int("creators", denylist.Len()))
	}

	a.service = tracker.NewService(a.store, a.checker, denylist, a.clock)
	return a, nil
}

// Close releases the RPC client and the database handle
func (a *app) Close() {
	if a.rpc != nil {
		a.rpc.Close()
	}
	if err := store.Close(a.db); err != nil {
		logger.Error(err)
	}
}

// printJSON writes v as indented JSON followed by a newline
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
