package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"tickchain/logx"
)

var rootCmd = &cobra.Command{
	Use:   "tickchain",
	Short: "Proof-of-history tick chain CLI",
	Long:  "Command line interface for producing, verifying and benchmarking proof-of-history tick chains.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
