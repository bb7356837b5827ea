package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"

	"github.com/utxokit/btcpay"
	"github.com/utxokit/btcpay/exporter"
)

const defaultListenAddress = ":9130"

func main() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StderrHandler))
	logger := log.New("app", "btcpay-exporter")

	if err := run(logger); err != nil {
		logger.Error("Exporter failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	cfgPath := flag.String("config", "config.yml", "Path to YAML config file")
	interval := flag.Duration("interval", 30*time.Second, "How often to refresh balances")
	flag.Parse()

	cfg, err := btcpay.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if cfg.EnableRPCDebug {
		log.Root().SetHandler(log.LvlFilterHandler(log.LvlDebug, log.StderrHandler))
	}
	if len(cfg.ExporterAddresses) == 0 {
		return errors.New("no exporter_addresses configured")
	}
	listenAddress := cfg.ExporterListenAddress
	if listenAddress == "" {
		listenAddress = defaultListenAddress
	}

	client, err := btcpay.NewClient(*cfg, logger)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := client.CheckConnection(ctx); err != nil {
		return err
	}

	exp := exporter.New(listenAddress, cfg.ExporterAddresses, client, logger)

	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			if err := exp.Collect(ctx); err != nil {
				logger.Warn("Balance collection failed", "err", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	go func() {
		logger.Info("Serving metrics", "addr", listenAddress)
		if err := exp.Serve(); err != nil {
			logger.Error("Metrics server stopped", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return exp.Shutdown(shutdownCtx)
}
