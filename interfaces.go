package btcpay

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/utxokit/btcpay/rpc"
)

// Clienter is the interface for inspecting balances and sending payments
// through a btc node wallet
type Clienter interface {
	CheckConnection(ctx context.Context) error
	InspectBalance(ctx context.Context, address string) (*BalanceReport, error)
	WalletBalance(ctx context.Context) (btcutil.Amount, error)
	ListAddresses(ctx context.Context) ([]*rpc.AddressInfo, error)
	SendPayment(ctx context.Context, recipient string, amountBTC float64) (*PaymentReceipt, error)
	Shutdown()
}
