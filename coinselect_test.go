package btcpay

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/stretchr/testify/assert"

	"github.com/utxokit/btcpay/rpc"
)

func utxo(txid string, vout uint32, sats int64, confirmations int64) *rpc.UnspentOutput {
	return &rpc.UnspentOutput{
		TxID:          txid,
		Vout:          vout,
		AmountBTC:     float64(sats) / 1e8,
		AmountSats:    sats,
		Confirmations: confirmations,
		Spendable:     true,
		Safe:          true,
	}
}

func TestSelectInputs(t *testing.T) {
	tests := []struct {
		name           string
		targetSats     btcutil.Amount
		utxos          []*rpc.UnspentOutput
		expectedTxids  []string
		expectedTotal  btcutil.Amount
		expectedChange btcutil.Amount
	}{
		{
			name:       "More confirmed output preferred and sufficient alone",
			targetSats: 40_000_000,
			utxos: []*rpc.UnspentOutput{
				utxo("a", 0, 50_000_000, 6),
				utxo("b", 1, 30_000_000, 2),
			},
			expectedTxids:  []string{"a"},
			expectedTotal:  50_000_000,
			expectedChange: 10_000_000,
		},
		{
			name:           "Zero target satisfied by empty selection",
			targetSats:     0,
			utxos:          []*rpc.UnspentOutput{utxo("a", 0, 50_000_000, 6)},
			expectedTxids:  nil,
			expectedTotal:  0,
			expectedChange: 0,
		},
		{
			name:       "Accumulates across outputs until covered",
			targetSats: 45_000_000,
			utxos: []*rpc.UnspentOutput{
				utxo("c", 0, 10_000_000, 1),
				utxo("a", 0, 30_000_000, 5),
				utxo("b", 2, 20_000_000, 3),
			},
			expectedTxids:  []string{"a", "b"},
			expectedTotal:  50_000_000,
			expectedChange: 5_000_000,
		},
		{
			name:       "Insufficient funds returns empty result",
			targetSats: 100_000_000,
			utxos: []*rpc.UnspentOutput{
				utxo("a", 0, 50_000_000, 6),
				utxo("b", 1, 30_000_000, 2),
			},
			expectedTxids:  nil,
			expectedTotal:  0,
			expectedChange: 0,
		},
		{
			name:          "Exact cover leaves zero change",
			targetSats:    80_000_000,
			utxos:         []*rpc.UnspentOutput{utxo("a", 0, 50_000_000, 6), utxo("b", 1, 30_000_000, 2)},
			expectedTxids: []string{"a", "b"},
			expectedTotal: 80_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SelectInputs(tt.targetSats, tt.utxos)

			txids := make([]string, 0, len(result.Inputs))
			for _, input := range result.Inputs {
				txids = append(txids, input.Txid)
			}
			if tt.expectedTxids == nil {
				assert.Empty(t, result.Inputs)
			} else {
				assert.Equal(t, tt.expectedTxids, txids)
			}
			assert.Equal(t, tt.expectedTotal, result.TotalSats)
			assert.Equal(t, tt.expectedChange, result.ChangeSats)

			if result.TotalSats > 0 {
				assert.GreaterOrEqual(t, int64(result.TotalSats), int64(tt.targetSats))
				assert.Equal(t, result.TotalSats-tt.targetSats, result.ChangeSats)
			}
		})
	}
}

func TestSelectInputsKeepsNodeOrderOnEqualConfirmations(t *testing.T) {
	utxos := []*rpc.UnspentOutput{
		utxo("first", 0, 10_000_000, 3),
		utxo("second", 0, 10_000_000, 3),
		utxo("third", 0, 10_000_000, 3),
	}

	result := SelectInputs(25_000_000, utxos)

	assert.Equal(t, []string{"first", "second", "third"},
		[]string{result.Inputs[0].Txid, result.Inputs[1].Txid, result.Inputs[2].Txid})
}

func TestSelectInputsDoesNotMutateInput(t *testing.T) {
	utxos := []*rpc.UnspentOutput{
		utxo("low", 0, 10_000_000, 1),
		utxo("high", 0, 10_000_000, 9),
	}

	SelectInputs(15_000_000, utxos)

	assert.Equal(t, "low", utxos[0].TxID)
	assert.Equal(t, "high", utxos[1].TxID)
}
