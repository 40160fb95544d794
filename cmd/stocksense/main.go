package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stocksense",
	Short: "Multi-source equity analysis for NSE stocks",
}

func main() {
	rootCmd.AddCommand(serveCmd, analyzeCmd, sectorCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
