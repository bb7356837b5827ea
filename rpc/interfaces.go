package rpc

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// Noder is the JSON-RPC surface of the bitcoin node consumed by btcpay.
// Transaction construction, signing and validation all happen node side;
// this interface only moves requests and decoded responses.
type Noder interface {
	GetBlockchainInfo(ctx context.Context) (*ChainInfo, error)
	ListUnspent(ctx context.Context, minConf, maxConf int, addresses []string) ([]*UnspentOutput, error)
	GetWalletBalance(ctx context.Context) (btcutil.Amount, error)
	ListReceivedByAddress(ctx context.Context, minConf int, includeEmpty bool) ([]*AddressInfo, error)
	CreateRawTransaction(ctx context.Context, inputs []btcjson.TransactionInput, outputs map[btcutil.Address]btcutil.Amount) (*wire.MsgTx, error)
	SignTransaction(ctx context.Context, tx *wire.MsgTx) (*wire.MsgTx, bool, error)
	SendTransaction(ctx context.Context, tx *wire.MsgTx) (string, error)
	Disconnect()
}
