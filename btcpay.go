package btcpay

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"

	"github.com/utxokit/btcpay/rpc"
)

// Client is the btc client that drives the node wallet over JSON-RPC
type Client struct {
	logger       log.Logger
	cfg          Config
	netParams    *chaincfg.Params
	node         rpc.Noder
	minConf      int
	maxConf      int
	feeRate      int64
	segwitInputs bool
}

const (
	DEFAULT_MIN_CONFIRMATIONS = 1
	DEFAULT_MAX_CONFIRMATIONS = 9999999
	DEFAULT_FEE_RATE          = 2
)

func NewClient(cfg Config, logger log.Logger) (Clienter, error) {
	logger.Debug("Creating btcpay client")

	isValid := IsValidConfig(&cfg)
	if !isValid {
		err := errors.New("invalid config")
		return nil, err
	}

	netParams, err := loadNetwork(cfg.Net)
	if err != nil {
		return nil, err
	}

	segwitInputs, err := loadInputType(cfg.InputType)
	if err != nil {
		return nil, err
	}

	minConf, maxConf, feeRate := loadFeePolicy(&cfg)

	node, err := rpc.NewNode(rpc.NodeConfig{
		Host:        cfg.RPCHost,
		Port:        cfg.RPCPort,
		User:        cfg.RPCUser,
		Pass:        cfg.RPCPass,
		Wallet:      cfg.WalletName,
		EnableDebug: cfg.EnableRPCDebug,
	}, netParams, logger)
	if err != nil {
		return nil, err
	}

	client := Client{
		logger:       logger,
		cfg:          cfg,
		netParams:    netParams,
		node:         node,
		minConf:      minConf,
		maxConf:      maxConf,
		feeRate:      feeRate,
		segwitInputs: segwitInputs,
	}

	return &client, nil
}

// Shutdown closes the RPC client
func (client *Client) Shutdown() {
	client.node.Disconnect()
}

// CheckConnection verifies the node is reachable and logs the chain state
func (client *Client) CheckConnection(ctx context.Context) error {
	info, err := client.node.GetBlockchainInfo(ctx)
	if err != nil {
		return errors.Wrap(err, "connect to node")
	}
	client.logger.Info("Connected to bitcoin node", "chain", info.Chain, "height", info.Blocks)
	return nil
}

// InspectBalance sums the unspent outputs of a single address into a report
func (client *Client) InspectBalance(ctx context.Context, address string) (*BalanceReport, error) {
	utxos, err := client.node.ListUnspent(ctx, 0, client.maxConf, []string{address})
	if err != nil {
		return nil, err
	}

	report := BuildBalanceReport(address, utxos)
	client.logger.Info("Unspent outputs aggregated",
		"address", address, "count", report.UnspentCount, "totalSats", report.TotalSats)
	return report, nil
}

// WalletBalance returns the confirmed balance of the whole wallet
func (client *Client) WalletBalance(ctx context.Context) (btcutil.Amount, error) {
	return client.node.GetWalletBalance(ctx)
}

// ListAddresses returns the wallet addresses with their received totals
func (client *Client) ListAddresses(ctx context.Context) ([]*rpc.AddressInfo, error) {
	return client.node.ListReceivedByAddress(ctx, 0, true)
}

// SendPayment selects wallet inputs for amountBTC, asks the node to create,
// sign and broadcast the transaction, and returns a receipt. Each step
// depends on the previous one succeeding; any failure aborts the remaining
// sequence with no retry and no partial submission.
func (client *Client) SendPayment(ctx context.Context, recipient string, amountBTC float64) (*PaymentReceipt, error) {
	amount, err := btcutil.NewAmount(amountBTC)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount %v", amountBTC)
	}
	if amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}

	recipientAddr, err := btcutil.DecodeAddress(recipient, client.netParams)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid recipient address %s", recipient)
	}

	utxos, err := client.node.ListUnspent(ctx, client.minConf, client.maxConf, nil)
	if err != nil {
		return nil, err
	}
	if len(utxos) == 0 {
		return nil, errors.New("wallet has no unspent outputs")
	}

	selection := SelectInputs(amount, utxos)
	if len(selection.Inputs) == 0 {
		return nil, errors.Errorf("insufficient funds: target %d sats", int64(amount))
	}

	outputCount := 1
	if selection.ChangeSats > 0 {
		outputCount = 2
	}
	size := EstimateTxSize(len(selection.Inputs), outputCount, client.segwitInputs)
	fee := EstimateFee(size, client.feeRate)

	if selection.TotalSats < amount+fee {
		return nil, errors.Errorf("insufficient funds: need %d sats including fee, have %d",
			int64(amount+fee), int64(selection.TotalSats))
	}
	change := selection.TotalSats - amount - fee

	outputs := map[btcutil.Address]btcutil.Amount{
		recipientAddr: amount,
	}
	if change > 0 && change <= DustLimit {
		client.logger.Debug("Change below dust limit, folding into fee", "change", change)
		fee += change
		change = 0
	}
	if change > 0 {
		changeAddr, err := client.changeAddress(ctx)
		if err != nil {
			return nil, err
		}
		outputs[changeAddr] = change
	}

	rawTx, err := client.node.CreateRawTransaction(ctx, selection.Inputs, outputs)
	if err != nil {
		return nil, err
	}

	signedTx, complete, err := client.node.SignTransaction(ctx, rawTx)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, errors.New("transaction signing incomplete")
	}

	txid, err := client.node.SendTransaction(ctx, signedTx)
	if err != nil {
		return nil, err
	}

	client.logger.Info("Payment broadcast", "txid", txid,
		"amountSats", int64(amount), "feeSats", int64(fee), "changeSats", int64(change),
		"vsize", size, "inputs", len(selection.Inputs))

	return &PaymentReceipt{
		TxID:        txid,
		AmountSats:  amount,
		FeeSats:     fee,
		ChangeSats:  change,
		VirtualSize: size,
		InputCount:  len(selection.Inputs),
	}, nil
}

// changeAddress resolves where change goes: the configured address when
// set, otherwise the first address the wallet reports.
func (client *Client) changeAddress(ctx context.Context) (btcutil.Address, error) {
	if client.cfg.ChangeAddress != "" {
		addr, err := btcutil.DecodeAddress(client.cfg.ChangeAddress, client.netParams)
		if err != nil {
			return nil, errors.Wrap(err, "invalid change address")
		}
		return addr, nil
	}

	addresses, err := client.node.ListReceivedByAddress(ctx, 0, true)
	if err != nil {
		return nil, errors.Wrap(err, "resolve change address")
	}
	if len(addresses) == 0 {
		return nil, errors.New("wallet has no address to receive change")
	}
	addr, err := btcutil.DecodeAddress(addresses[0].Address, client.netParams)
	if err != nil {
		return nil, errors.Wrap(err, "resolve change address")
	}
	return addr, nil
}
