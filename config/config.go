package config

import (
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"tickchain/logx"
)

// DefaultChainConfig mirrors the reference demo run: keccak256, ten blocks
// of one million ticks, a payload commitment every 16th tick.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		Algorithm:  "keccak256",
		Seed:       "Hello World!",
		BlockSize:  1_000_000,
		BlockCount: 10,
		DataEvery:  16,
	}
}

// LoadChainConfig reads and parses the chain.yml file, falling back to the
// defaults when the file does not exist.
func LoadChainConfig(path string) (*ChainConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logx.Warn("CONFIG", "Chain config not found at ", path, ", using defaults")
			cfg := DefaultChainConfig()
			return &cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	cfgFile := ConfigFile{Chain: DefaultChainConfig()}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, err
	}
	logx.Info("CONFIG", "Loaded chain config: algorithm=", cfgFile.Chain.Algorithm,
		" block_size=", cfgFile.Chain.BlockSize, " block_count=", cfgFile.Chain.BlockCount)
	return &cfgFile.Chain, nil
}

type TuningConfig struct {
	TickIntervalMs      int `ini:"tick_interval_ms"`
	CommitmentStoreSize int `ini:"commitment_store_size"`
}

// LoadTuningConfig reads the [poh] section of config.ini, falling back to
// the defaults when the file does not exist.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// The store default covers the commitments of more than three default
	// blocks, the producer's maximum lead over the verifier.
	tuning := &TuningConfig{
		TickIntervalMs:      100,
		CommitmentStoreSize: 200000,
	}
	cfg, err := ini.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tuning, nil
		}
		return nil, err
	}
	if err := cfg.Section("poh").MapTo(tuning); err != nil {
		return nil, err
	}
	return tuning, nil
}
