package config

// ChainConfig describes one proof-of-history chain run.
type ChainConfig struct {
	Algorithm   string `yaml:"algorithm"`    // sha256 | sha3-256 | keccak256 | blake3
	Seed        string `yaml:"seed"`         // hashed into the chain seed
	BlockSize   int    `yaml:"block_size"`   // ticks per block
	BlockCount  int    `yaml:"block_count"`  // blocks to produce
	DataEvery   int    `yaml:"data_every"`   // mix a payload commitment every n-th tick, 0 disables
	MetricsAddr string `yaml:"metrics_addr"` // prometheus listen address, empty disables
}

// ConfigFile is the top-level structure for chain.yml
type ConfigFile struct {
	Chain ChainConfig `yaml:"chain"`
}
