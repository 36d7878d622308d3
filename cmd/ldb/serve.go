package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lindadb/ldb/admin"
	"github.com/lindadb/ldb/bcast"
	"github.com/lindadb/ldb/log"
	"github.com/lindadb/ldb/metrics"
	"github.com/lindadb/ldb/store"
)

// resolvedConfig merges a loaded YAML config (if any) under the flags
// actually passed on the command line; an explicit flag always wins.
func resolvedConfig(ctx *cli.Context) (config, error) {
	cfg := config{
		Addr:      ctx.String(addrFlag.Name),
		Space:     ctx.String(spaceFlag.Name),
		Capacity:  ctx.Int(capacityFlag.Name),
		CacheSize: ctx.Int(cacheSizeFlag.Name),
		Peers:     ctx.StringSlice(peersFlag.Name),
		Verbosity: ctx.Int(verbosityFlag.Name),
	}
	path := ctx.String(configFlag.Name)
	if path == "" {
		return cfg, nil
	}
	fileCfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}
	if !ctx.IsSet(addrFlag.Name) && fileCfg.Addr != "" {
		cfg.Addr = fileCfg.Addr
	}
	if !ctx.IsSet(spaceFlag.Name) && fileCfg.Space != "" {
		cfg.Space = fileCfg.Space
	}
	if !ctx.IsSet(capacityFlag.Name) && fileCfg.Capacity != 0 {
		cfg.Capacity = fileCfg.Capacity
	}
	if !ctx.IsSet(cacheSizeFlag.Name) && fileCfg.CacheSize != 0 {
		cfg.CacheSize = fileCfg.CacheSize
	}
	if !ctx.IsSet(peersFlag.Name) && len(fileCfg.Peers) > 0 {
		cfg.Peers = fileCfg.Peers
	}
	if !ctx.IsSet(verbosityFlag.Name) && fileCfg.Verbosity != 0 {
		cfg.Verbosity = fileCfg.Verbosity
	}
	return cfg, nil
}

// buildStore constructs a store.Store from a resolved config, wiring a
// bcast.Replicator in place of the default no-op sink whenever peers
// were supplied.
func buildStore(cfg config) *store.Store {
	opts := []store.Option{
		store.WithSpace(cfg.Space),
		store.WithCapacity(cfg.Capacity),
		store.WithCacheSize(cfg.CacheSize),
	}
	if len(cfg.Peers) > 0 {
		peers := make([]*bcast.Peer, len(cfg.Peers))
		for i, addr := range cfg.Peers {
			peers[i] = &bcast.Peer{Addr: addr}
		}
		opts = append(opts, store.WithSink(bcast.NewReplicator(peers...)))
	}
	return store.New(opts...)
}

func serveAction(ctx *cli.Context) error {
	cfg, err := resolvedConfig(ctx)
	if err != nil {
		return err
	}
	initLogger(cfg.Verbosity)
	metrics.InitializePrometheusMetrics()

	s := buildStore(cfg)
	defer s.Close()

	var logLevel slog.LevelVar
	logLevel.Set(verbosityToLevel(cfg.Verbosity))
	baseURL, stop, err := admin.StartServer(cfg.Addr, &logLevel, s)
	if err != nil {
		return errors.Wrap(err, "start admin server")
	}
	defer stop()
	log.Info("ldb serving", "admin", baseURL, "space", cfg.Space)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	return nil
}
