package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tickchain/poh"
)

var benchTicks int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Report single-core tick throughput per hash algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		runBench(benchTicks)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVar(&benchTicks, "ticks", 1_000_000, "Number of ticks per algorithm")
}

func runBench(n int) {
	for _, alg := range poh.Algorithms() {
		gen := poh.NewTicks(alg, alg.Zero())
		start := time.Now()
		for i := 0; i < n; i++ {
			gen.Next()
		}
		elapsed := time.Since(start)
		fmt.Printf("%-10s %12d ticks in %10v (%10.0f ticks/s)\n",
			alg.Name, n, elapsed, float64(n)/elapsed.Seconds())
	}
}
