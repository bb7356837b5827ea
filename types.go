package btcpay

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"

	"github.com/utxokit/btcpay/rpc"
)

// SelectionResult is the outcome of a coin selection attempt. The zero value
// means the available outputs could not cover the target amount.
type SelectionResult struct {
	Inputs     []btcjson.TransactionInput
	TotalSats  btcutil.Amount
	ChangeSats btcutil.Amount
}

// BalanceReport aggregates the unspent outputs of a single address.
type BalanceReport struct {
	Address      string               `json:"address"`
	TotalBTC     string               `json:"total_btc"`
	TotalSats    int64                `json:"total_sats"`
	UnspentCount int                  `json:"unspent_count"`
	UnspentList  []*rpc.UnspentOutput `json:"unspent_list"`
}

// PaymentReceipt describes a broadcast payment transaction.
type PaymentReceipt struct {
	TxID        string
	AmountSats  btcutil.Amount
	FeeSats     btcutil.Amount
	ChangeSats  btcutil.Amount
	VirtualSize int
	InputCount  int
}
