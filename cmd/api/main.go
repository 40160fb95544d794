package main

import (
	"log"

	"stocksense/cmd"
)

func main() {
	apiHandler, sched, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	if err := sched.Register(); err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	if err := apiHandler.StartApi(8000); err != nil {
		log.Fatal(err)
	}
}
