package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/woogihooni/exmJo/internal/app"
	"github.com/woogihooni/exmJo/internal/config"
	"github.com/woogihooni/exmJo/internal/handler"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error closing storage: %v", err)
		}
	}()

	h := handler.NewTerminalHandler(a.Quiz, a.Export, os.Stdin, os.Stdout)
	if err := h.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Quiz stopped with error: %v", err)
		return
	}
	log.Println("Bye")
}
