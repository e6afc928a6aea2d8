package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"neocr/app"
	"neocr/clipboard"
	"neocr/config"
	"neocr/logutil"
	"neocr/ollama"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "neocr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logutil.Setup(cfg.EnableFileLogging)
	log.Printf("Starting neocr (ollama=%s, language=%s)", cfg.OllamaURL, cfg.Language)

	// Without a working clipboard the captured text has nowhere to go.
	if err := clipboard.Init(); err != nil {
		return err
	}

	client := ollama.New(cfg.OllamaURL)
	fyneApp := fyneapp.New()
	flow := app.New(fyneApp, cfg, client)

	// The fyne event loop must own the main goroutine, so the flow runs
	// beside it and quits the loop when it finishes either way.
	errCh := make(chan error, 1)
	go func() {
		errCh <- flow.Run(context.Background())
		fyne.Do(fyneApp.Quit)
	}()

	fyneApp.Run()

	if err := <-errCh; err != nil {
		return err
	}
	return nil
}
