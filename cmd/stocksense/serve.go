package main

import (
	"log"

	"stocksense/cmd"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
}

func runServe(_ *cobra.Command, _ []string) {
	apiHandler, sched, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	if err := sched.Register(); err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	if err := apiHandler.StartApi(servePort); err != nil {
		log.Fatal(err)
	}
}
