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
	logger := log.New("app", "btcpay-send")

	if err := run(logger); err != nil {
		logger.Error("Payment failed", "err", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	cfgPath := flag.String("config", "config.yml", "Path to YAML config file")
	to := flag.String("to", "", "Recipient address")
	amount := flag.Float64("amount", 0, "Payment amount in BTC")
	flag.Parse()

	if *to == "" {
		return errors.New("a recipient is required, pass -to")
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

	receipt, err := client.SendPayment(ctx, *to, *amount)
	if err != nil {
		return errors.Wrapf(err, "send %v BTC to %s", *amount, *to)
	}

	logger.Info("Payment sent", "txid", receipt.TxID,
		"amountBtc", receipt.AmountSats.ToBTC(), "feeSats", int64(receipt.FeeSats),
		"changeSats", int64(receipt.ChangeSats), "vsize", receipt.VirtualSize,
		"inputs", receipt.InputCount)
	return nil
}
