package mocks

import (
	"context"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/mock"

	"github.com/utxokit/btcpay/rpc"
)

type Node struct {
	mock.Mock
}

func (m *Node) GetBlockchainInfo(ctx context.Context) (*rpc.ChainInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.ChainInfo), args.Error(1)
}

func (m *Node) ListUnspent(ctx context.Context, minConf, maxConf int, addresses []string) ([]*rpc.UnspentOutput, error) {
	args := m.Called(ctx, minConf, maxConf, addresses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rpc.UnspentOutput), args.Error(1)
}

func (m *Node) GetWalletBalance(ctx context.Context) (btcutil.Amount, error) {
	args := m.Called(ctx)
	return args.Get(0).(btcutil.Amount), args.Error(1)
}

func (m *Node) ListReceivedByAddress(ctx context.Context, minConf int, includeEmpty bool) ([]*rpc.AddressInfo, error) {
	args := m.Called(ctx, minConf, includeEmpty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rpc.AddressInfo), args.Error(1)
}

func (m *Node) CreateRawTransaction(ctx context.Context, inputs []btcjson.TransactionInput, outputs map[btcutil.Address]btcutil.Amount) (*wire.MsgTx, error) {
	args := m.Called(ctx, inputs, outputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wire.MsgTx), args.Error(1)
}

func (m *Node) SignTransaction(ctx context.Context, tx *wire.MsgTx) (*wire.MsgTx, bool, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*wire.MsgTx), args.Bool(1), args.Error(2)
}

func (m *Node) SendTransaction(ctx context.Context, tx *wire.MsgTx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *Node) Disconnect() {
	m.Called()
}
