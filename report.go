package btcpay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/pkg/errors"

	"github.com/utxokit/btcpay/rpc"
)

// BuildBalanceReport aggregates the outputs that belong to address into a
// satoshi-precise report. Entries for other addresses are dropped even if
// the node returned them.
func BuildBalanceReport(address string, utxos []*rpc.UnspentOutput) *BalanceReport {
	totalSats := int64(0)
	items := []*rpc.UnspentOutput{}
	for _, utxo := range utxos {
		if utxo.Address != address {
			continue
		}
		totalSats += utxo.AmountSats
		items = append(items, utxo)
	}

	return &BalanceReport{
		Address:      address,
		TotalBTC:     fmt.Sprintf("%.8f", btcutil.Amount(totalSats).ToBTC()),
		TotalSats:    totalSats,
		UnspentCount: len(items),
		UnspentList:  items,
	}
}

// WriteReport serializes the report as indented JSON at path.
func WriteReport(report *BalanceReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode balance report")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write balance report")
	}
	return nil
}
