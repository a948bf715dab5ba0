package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/brownsdata/ingredient-allocator/internal/cli"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadOrEnv()
	flags := cli.ParseServeFlags()

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
