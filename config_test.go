package btcpay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	raw := `
net: regtest
rpc_host: 127.0.0.1
rpc_port: "48332"
rpc_user: user
rpc_pass: pass
wallet_name: testwallet
fee_rate: 5
input_type: legacy
exporter_addresses:
  - tb1q2m5g3e7pm6k2pgh44kaglk4m0xw3xgpjgprf3w
`
	path := filepath.Join(t.TempDir(), "config.yml")
	assert.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := LoadConfig(path)

	assert.NoError(t, err)
	assert.Equal(t, "regtest", cfg.Net)
	assert.Equal(t, "127.0.0.1", cfg.RPCHost)
	assert.Equal(t, "48332", cfg.RPCPort)
	assert.Equal(t, "testwallet", cfg.WalletName)
	assert.Equal(t, int64(5), cfg.FeeRate)
	assert.Equal(t, "legacy", cfg.InputType)
	assert.Len(t, cfg.ExporterAddresses, 1)
	assert.True(t, IsValidConfig(cfg))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestIsValidConfig(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		expected bool
	}{
		{"Complete config", func(cfg *Config) {}, true},
		{"Missing net", func(cfg *Config) { cfg.Net = "" }, false},
		{"Missing host", func(cfg *Config) { cfg.RPCHost = "" }, false},
		{"Missing port", func(cfg *Config) { cfg.RPCPort = "" }, false},
		{"Missing user", func(cfg *Config) { cfg.RPCUser = "" }, false},
		{"Missing pass", func(cfg *Config) { cfg.RPCPass = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Equal(t, tt.expected, IsValidConfig(&cfg))
		})
	}
}

func TestLoadFeePolicyDefaults(t *testing.T) {
	cfg := validConfig()
	minConf, maxConf, feeRate := loadFeePolicy(&cfg)

	assert.Equal(t, DEFAULT_MIN_CONFIRMATIONS, minConf)
	assert.Equal(t, DEFAULT_MAX_CONFIRMATIONS, maxConf)
	assert.Equal(t, int64(DEFAULT_FEE_RATE), feeRate)

	cfg.MinConfirmations = 3
	cfg.FeeRate = 7
	minConf, _, feeRate = loadFeePolicy(&cfg)
	assert.Equal(t, 3, minConf)
	assert.Equal(t, int64(7), feeRate)
}
