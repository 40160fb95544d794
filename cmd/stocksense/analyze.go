package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"stocksense/cmd"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "Run the full analysis pipeline for one symbol",
	Args:  cobra.ExactArgs(1),
	Run:   runAnalyze,
}

func runAnalyze(_ *cobra.Command, args []string) {
	apiHandler, _, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	bundle, err := apiHandler.MarketData.GetComprehensiveAnalysis(context.Background(), args[0])
	if err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
