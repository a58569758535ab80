package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/woogihooni/exmJo/internal/app"
	"github.com/woogihooni/exmJo/internal/config"
)

// Выгружает отмеченные вопросы с заметками в формате export.format
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer a.Close()

	var out io.Writer = os.Stdout
	if cfg.Export.Output != "" {
		file, err := os.Create(cfg.Export.Output)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", cfg.Export.Output, err)
		}
		defer file.Close()
		out = file
	}

	n, err := a.Export.Export(cfg.Export.Format, out)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Exported %d flagged questions", n)
}
