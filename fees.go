package btcpay

import "github.com/btcsuite/btcd/btcutil"

// Heuristic transaction size components in virtual bytes. These are fixed
// averages, not derived from actual scripts, so the resulting estimate is
// an approximation and not witness-weight accurate.
const (
	baseTxSize      = 10
	inputSizeSegwit = 68
	inputSizeLegacy = 148
	outputSize      = 34
)

// DustLimit is the smallest change output worth creating, in satoshis.
const DustLimit = btcutil.Amount(546)

// EstimateTxSize returns the approximate size in virtual bytes of a
// transaction with the given input and output counts.
func EstimateTxSize(inputCount, outputCount int, segwit bool) int {
	inputSize := inputSizeLegacy
	if segwit {
		inputSize = inputSizeSegwit
	}
	return baseTxSize + inputCount*inputSize + outputCount*outputSize
}

// EstimateFee returns sizeBytes times satsPerByte as an amount. Integer
// arithmetic throughout, no rounding.
func EstimateFee(sizeBytes int, satsPerByte int64) btcutil.Amount {
	return btcutil.Amount(int64(sizeBytes) * satsPerByte)
}
