package main

import (
	"context"
	"flag"
	"os"

	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"

	"github.com/utxokit/btcpay"
)

func main() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StderrHandler))
	logger := log.New("app", "btcpay-balance")

	if err := run(logger); err != nil {
		logger.Error("Balance inspection failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	cfgPath := flag.String("config", "config.yml", "Path to YAML config file")
	address := flag.String("address", "", "Address whose unspent outputs are summed")
	out := flag.String("out", "utxo_report.json", "Path for the JSON balance report")
	flag.Parse()

	if *address == "" {
		return errors.New("an address is required, pass -address")
	}

	cfg, err := btcpay.LoadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if cfg.EnableRPCDebug {
		log.Root().SetHandler(log.LvlFilterHandler(log.LvlDebug, log.StderrHandler))
	}

	client, err := btcpay.NewClient(*cfg, logger)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	ctx := context.Background()
	if err := client.CheckConnection(ctx); err != nil {
		return err
	}

	// The wallet total is informational, a failure here does not abort
	// the address inspection.
	if total, err := client.WalletBalance(ctx); err != nil {
		logger.Warn("Failed to fetch wallet balance", "err", err)
	} else {
		logger.Info("Wallet balance", "btc", total.ToBTC())
	}

	report, err := client.InspectBalance(ctx, *address)
	if err != nil {
		return errors.Wrapf(err, "inspect %s", *address)
	}

	for i, utxo := range report.UnspentList {
		logger.Info("Unspent output", "index", i+1, "txid", utxo.TxID, "vout", utxo.Vout,
			"btc", utxo.AmountBTC, "sats", utxo.AmountSats,
			"confirmations", utxo.Confirmations, "spendable", utxo.Spendable)
	}
	logger.Info("Balance report", "address", report.Address,
		"totalBtc", report.TotalBTC, "totalSats", report.TotalSats, "outputs", report.UnspentCount)

	if err := btcpay.WriteReport(report, *out); err != nil {
		return err
	}
	logger.Info("Report written", "path", *out)
	return nil
}
