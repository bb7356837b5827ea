package rpc

// UnspentOutput is one spendable coin record as reported by the node. The
// json tags match the balance report artifact, not the node wire format;
// listUnspentResult in node.go handles the ingest side.
type UnspentOutput struct {
	TxID          string  `json:"transaction_id"`
	Vout          uint32  `json:"output_index"`
	Address       string  `json:"-"`
	AmountBTC     float64 `json:"btc_value"`
	AmountSats    int64   `json:"sats_value"`
	Confirmations int64   `json:"confirmations"`
	Spendable     bool    `json:"spendable"`
	Safe          bool    `json:"secure"`
}

// AddressInfo is one wallet address with its received total.
type AddressInfo struct {
	Address       string  `json:"address"`
	AmountBTC     float64 `json:"balance"`
	Confirmations uint64  `json:"confirmations"`
}

type ChainInfo struct {
	Chain   string `json:"chain"`
	Blocks  int32  `json:"blocks"`
	Headers int32  `json:"headers"`
}
