package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"
)

// NodeConfig carries the connection parameters for the node RPC server.
type NodeConfig struct {
	Host        string
	Port        string
	User        string
	Pass        string
	Wallet      string
	EnableDebug bool
}

type node struct {
	logger  log.Logger
	client  *rpcclient.Client
	isDebug bool
}

// NewNode returns a Noder backed by the node's HTTP JSON-RPC interface.
// The underlying client connects lazily, so a reachable node is not
// required until the first call.
func NewNode(cfg NodeConfig, netParams *chaincfg.Params, parentLogger log.Logger) (Noder, error) {
	nodeLogger := parentLogger.New("module", "rpc")

	host := net.JoinHostPort(cfg.Host, cfg.Port)
	if cfg.Wallet != "" {
		host = fmt.Sprintf("%s/wallet/%s", host, cfg.Wallet)
	}

	connCfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		Params:       netParams.Name,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	client, err := rpcclient.New(connCfg, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create rpc client")
	}

	return &node{
		logger:  nodeLogger,
		client:  client,
		isDebug: cfg.EnableDebug,
	}, nil
}

// await runs a blocking rpcclient call in a goroutine so the caller's
// context is honored even though the underlying client has no context
// support.
func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}
	results := make(chan outcome, 1)
	go func() {
		value, err := call()
		results <- outcome{value, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-results:
		return res.value, res.err
	}
}

func (n *node) GetBlockchainInfo(ctx context.Context) (*ChainInfo, error) {
	info, err := await(ctx, n.client.GetBlockChainInfo)
	if err != nil {
		return nil, errors.Wrap(err, "getblockchaininfo")
	}
	return &ChainInfo{
		Chain:   info.Chain,
		Blocks:  info.Blocks,
		Headers: info.Headers,
	}, nil
}

// listUnspentResult is the node wire format of one listunspent entry.
// Decoded by hand because btcjson.ListUnspentResult has no safe field.
type listUnspentResult struct {
	TxID          string  `json:"txid"`
	Vout          uint32  `json:"vout"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount"`
	Confirmations int64   `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
	Safe          *bool   `json:"safe"`
}

func (n *node) ListUnspent(ctx context.Context, minConf, maxConf int, addresses []string) ([]*UnspentOutput, error) {
	params, err := marshalParams(minConf, maxConf)
	if err != nil {
		return nil, errors.Wrap(err, "listunspent")
	}
	if len(addresses) > 0 {
		addrParam, err := json.Marshal(addresses)
		if err != nil {
			return nil, errors.Wrap(err, "listunspent")
		}
		params = append(params, addrParam)
	}

	if n.isDebug {
		n.logger.Debug("Requesting unspent outputs", "minconf", minConf, "maxconf", maxConf, "addresses", addresses)
	}

	raw, err := await(ctx, func() (json.RawMessage, error) {
		return n.client.RawRequest("listunspent", params)
	})
	if err != nil {
		return nil, errors.Wrap(err, "listunspent")
	}

	var results []listUnspentResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, errors.Wrap(err, "decode listunspent response")
	}

	utxos := make([]*UnspentOutput, 0, len(results))
	for _, r := range results {
		utxo, err := toUnspentOutput(r)
		if err != nil {
			return nil, err
		}
		utxos = append(utxos, utxo)
	}
	return utxos, nil
}

func toUnspentOutput(r listUnspentResult) (*UnspentOutput, error) {
	amount, err := btcutil.NewAmount(r.Amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid utxo amount %v", r.Amount)
	}

	// Older nodes omit the safe flag; treat those outputs as safe.
	safe := true
	if r.Safe != nil {
		safe = *r.Safe
	}

	return &UnspentOutput{
		TxID:          r.TxID,
		Vout:          r.Vout,
		Address:       r.Address,
		AmountBTC:     r.Amount,
		AmountSats:    int64(amount),
		Confirmations: r.Confirmations,
		Spendable:     r.Spendable,
		Safe:          safe,
	}, nil
}

func marshalParams(params ...interface{}) ([]json.RawMessage, error) {
	rawParams := make([]json.RawMessage, 0, len(params))
	for _, param := range params {
		raw, err := json.Marshal(param)
		if err != nil {
			return nil, err
		}
		rawParams = append(rawParams, raw)
	}
	return rawParams, nil
}

func (n *node) GetWalletBalance(ctx context.Context) (btcutil.Amount, error) {
	balance, err := await(ctx, func() (btcutil.Amount, error) {
		return n.client.GetBalance("*")
	})
	if err != nil {
		return 0, errors.Wrap(err, "getbalance")
	}
	return balance, nil
}

func (n *node) ListReceivedByAddress(ctx context.Context, minConf int, includeEmpty bool) ([]*AddressInfo, error) {
	results, err := await(ctx, func() ([]btcjson.ListReceivedByAddressResult, error) {
		return n.client.ListReceivedByAddressIncludeEmpty(minConf, includeEmpty)
	})
	if err != nil {
		return nil, errors.Wrap(err, "listreceivedbyaddress")
	}

	addresses := make([]*AddressInfo, 0, len(results))
	for _, r := range results {
		addresses = append(addresses, &AddressInfo{
			Address:       r.Address,
			AmountBTC:     r.Amount,
			Confirmations: r.Confirmations,
		})
	}
	return addresses, nil
}

func (n *node) CreateRawTransaction(ctx context.Context, inputs []btcjson.TransactionInput, outputs map[btcutil.Address]btcutil.Amount) (*wire.MsgTx, error) {
	if n.isDebug {
		n.logger.Debug("Creating raw transaction", "inputs", len(inputs), "outputs", len(outputs))
	}
	tx, err := await(ctx, func() (*wire.MsgTx, error) {
		return n.client.CreateRawTransaction(inputs, outputs, nil)
	})
	if err != nil {
		return nil, errors.Wrap(err, "createrawtransaction")
	}
	return tx, nil
}

func (n *node) SignTransaction(ctx context.Context, tx *wire.MsgTx) (*wire.MsgTx, bool, error) {
	type signOutcome struct {
		tx       *wire.MsgTx
		complete bool
	}
	res, err := await(ctx, func() (signOutcome, error) {
		signedTx, complete, err := n.client.SignRawTransactionWithWallet(tx)
		return signOutcome{signedTx, complete}, err
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "signrawtransactionwithwallet")
	}
	return res.tx, res.complete, nil
}

func (n *node) SendTransaction(ctx context.Context, tx *wire.MsgTx) (string, error) {
	txHash, err := await(ctx, func() (*chainhash.Hash, error) {
		return n.client.SendRawTransaction(tx, false)
	})
	if err != nil {
		return "", errors.Wrap(err, "sendrawtransaction")
	}
	return txHash.String(), nil
}

// Disconnect shuts down the underlying RPC client.
func (n *node) Disconnect() {
	n.client.Shutdown()
}
