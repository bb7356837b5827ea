package btcpay

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Net is the type of network of the btc node
	Net string `yaml:"net"`

	// RPCHost is the host of the node RPC server
	RPCHost string `yaml:"rpc_host"`

	// RPCPort is the port of the node RPC server
	RPCPort string `yaml:"rpc_port"`

	// RPCUser is the username for the node RPC server
	RPCUser string `yaml:"rpc_user"`

	// RPCPass is the password for the node RPC server
	RPCPass string `yaml:"rpc_pass"`

	// WalletName selects the wallet endpoint on multi-wallet nodes, optional
	WalletName string `yaml:"wallet_name"`

	// MinConfirmations is the minimum number of confirmations for spendable UTXOs
	MinConfirmations int `yaml:"min_confirmations"`

	// MaxConfirmations is the maximum number of confirmations for listed UTXOs
	MaxConfirmations int `yaml:"max_confirmations"`

	// FeeRate is the fee rate in satoshis per virtual byte
	FeeRate int64 `yaml:"fee_rate"`

	// InputType is the assumed input type for size estimation: segwit or legacy
	InputType string `yaml:"input_type"`

	// ChangeAddress receives the change output; when empty the first wallet
	// address reported by the node is used
	ChangeAddress string `yaml:"change_address"`

	// ExporterListenAddress is the listen address of the metrics exporter
	ExporterListenAddress string `yaml:"exporter_listen_address"`

	// ExporterAddresses is the list of addresses the exporter tracks
	ExporterAddresses []string `yaml:"exporter_addresses"`

	// EnableRPCDebug is a flag for enabling debugging messages in the rpc client
	EnableRPCDebug bool `yaml:"enable_rpc_debug"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return &cfg, nil
}

func IsValidConfig(cfg *Config) bool {
	return cfg.Net != "" &&
		cfg.RPCHost != "" &&
		cfg.RPCPort != "" &&
		cfg.RPCUser != "" &&
		cfg.RPCPass != ""
}
