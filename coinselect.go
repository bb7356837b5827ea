package btcpay

import (
	"sort"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/utxokit/btcpay/rpc"
)

// SelectInputs greedily accumulates unspent outputs, most confirmed first,
// until they cover targetSats. Outputs with equal confirmations keep the
// order the node returned them in; that tie order is an implementation
// detail, not a guarantee. If the outputs cannot cover the target the zero
// SelectionResult is returned. ChangeSats is the remainder before any fee
// is deducted.
func SelectInputs(targetSats btcutil.Amount, utxos []*rpc.UnspentOutput) SelectionResult {
	sorted := make([]*rpc.UnspentOutput, len(utxos))
	copy(sorted, utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confirmations > sorted[j].Confirmations
	})

	var inputs []btcjson.TransactionInput
	totalSats := btcutil.Amount(0)
	for _, utxo := range sorted {
		if totalSats >= targetSats {
			break
		}
		inputs = append(inputs, btcjson.TransactionInput{
			Txid: utxo.TxID,
			Vout: utxo.Vout,
		})
		totalSats += btcutil.Amount(utxo.AmountSats)
	}

	if totalSats < targetSats {
		return SelectionResult{}
	}

	return SelectionResult{
		Inputs:     inputs,
		TotalSats:  totalSats,
		ChangeSats: totalSats - targetSats,
	}
}
