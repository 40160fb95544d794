package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"stocksense/cmd"
	"stocksense/internal/recommend"

	"github.com/spf13/cobra"
)

var (
	sectorLimit    int
	sectorCriteria string
)

var sectorCmd = &cobra.Command{
	Use:   "sector [query]",
	Short: "Rank the top picks in a sector",
	Args:  cobra.ExactArgs(1),
	Run:   runSector,
}

func init() {
	sectorCmd.Flags().IntVar(&sectorLimit, "limit", 0, "number of picks (0 uses the default)")
	sectorCmd.Flags().StringVar(&sectorCriteria, "criteria", "balanced", "ranking criteria: balanced, stability, growth, value")
}

func runSector(_ *cobra.Command, args []string) {
	apiHandler, _, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	picks, err := apiHandler.SectorRanker.TopPicks(
		context.Background(), args[0], sectorLimit, recommend.Criteria(sectorCriteria))
	if err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(picks, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
