package cmd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tickchain/config"
	"tickchain/exception"
	"tickchain/logx"
	"tickchain/monitoring"
	"tickchain/poh"
)

const (
	chainConfigPath  = "config/chain.yml"
	tuningConfigPath = "config/config.ini"
)

var (
	chainConfigFile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Produce a tick chain and verify it on a second thread",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runChain(chainConfigFile); err != nil {
			logx.Error("RUN", "Chain run failed: ", err)
			fmt.Println("Chain run failed:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&chainConfigFile, "config", "c", chainConfigPath, "Path to the chain config")
}

type verifierResult struct {
	history [][]byte
	err     error
}

// runChain is the producer/verifier pairing end to end: the main goroutine
// produces ticks in blocks, a second goroutine verifies them as they
// arrive, and the two histories are compared once the stream ends.
func runChain(configPath string) error {
	cfg, err := config.LoadChainConfig(configPath)
	if err != nil {
		return err
	}
	tuning, err := config.LoadTuningConfig(tuningConfigPath)
	if err != nil {
		return err
	}
	alg, err := poh.AlgorithmByName(cfg.Algorithm)
	if err != nil {
		return err
	}

	monitoring.InitMetrics()
	if cfg.MetricsAddr != "" {
		addr := cfg.MetricsAddr
		exception.SafeGo("metricsServer", func() {
			monitoring.StartMetricsServer(addr)
		})
	}

	seed := alg.HashString(cfg.Seed)
	store := poh.NewCommitmentStore(alg, tuning.CommitmentStoreSize)
	recorder := poh.NewRecorder(poh.NewTicks(alg, seed), store)
	producer := poh.NewProducer(recorder, cfg.BlockSize)
	if cfg.DataEvery > 0 {
		producer.MixPayloads(cfg.DataEvery, func(pos uint64) []byte {
			payload := make([]byte, 8)
			binary.BigEndian.PutUint64(payload, pos)
			return payload
		})
	}

	total := cfg.BlockSize * cfg.BlockCount
	blocks := make(chan poh.Block, 1)
	results := make(chan verifierResult, 1)
	start := time.Now()

	exception.SafeGoWithPanic("verifyLoop", func() {
		history, err := poh.VerifyLoop(alg, seed, blocks, store, nil)
		results <- verifierResult{history: history, err: err}
	})

	fmt.Printf("Producing %d ticks with %s in blocks of %d\n", total, alg.Name, cfg.BlockSize)
	producer.Run(total, blocks)
	fmt.Printf("%v: produced %d ticks\n", time.Since(start), total)

	res := <-results
	if res.err != nil {
		return res.err
	}
	fmt.Printf("%v: verified %d ticks\n", time.Since(start), len(res.history))

	history := recorder.History()
	if len(history) != len(res.history) {
		return fmt.Errorf("history length mismatch: produced %d, verified %d", len(history), len(res.history))
	}
	for i := range history {
		if !bytes.Equal(history[i], res.history[i]) {
			return fmt.Errorf("history mismatch at position %d", i)
		}
	}
	fmt.Printf("Producer and verifier histories match (%d ticks, tail %x)\n", len(history), history[len(history)-1])
	return nil
}
