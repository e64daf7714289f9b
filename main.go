// main is the entry point for the matchgrade CLI.
package main

import (
	"github.com/huangsam/matchgrade/cmd"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/iocache"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; real env vars and flags still apply.
	_ = godotenv.Load(".env")

	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Error", err)
	}
}
