package btcpay

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg"
)

func loadNetwork(networkInput string) (*chaincfg.Params, error) {
	switch networkInput {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, errors.New("invalid network")
	}
}

func loadInputType(inputTypeInput string) (bool, error) {
	switch inputTypeInput {
	case "", "segwit":
		return true, nil
	case "legacy":
		return false, nil
	default:
		return false, errors.New("invalid input type")
	}
}

func loadFeePolicy(cfg *Config) (minConfirmations, maxConfirmations int, feeRate int64) {
	if minConfirmations = cfg.MinConfirmations; minConfirmations == 0 {
		minConfirmations = DEFAULT_MIN_CONFIRMATIONS
	}
	if maxConfirmations = cfg.MaxConfirmations; maxConfirmations == 0 {
		maxConfirmations = DEFAULT_MAX_CONFIRMATIONS
	}
	if feeRate = cfg.FeeRate; feeRate == 0 {
		feeRate = DEFAULT_FEE_RATE
	}

	return minConfirmations, maxConfirmations, feeRate
}
