package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/brownsdata/ingredient-allocator/internal/cli"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadOrEnv()
	flags := cli.ParseImportFlags()

	if err := cli.RunImport(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
