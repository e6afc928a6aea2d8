// Package ocr turns a capture artifact into text through an Ollama
// vision model.
package ocr

import (
	"context"
	"fmt"
	"log"
	"os"

	"neocr/ollama"
)

const (
	// instruction is fixed: the model must return the text and nothing else.
	instruction  = "Extract the exact text in the image and output only the text."
	outputFormat = "markdown"
)

// Processor binds a client to a model choice and language hint for the
// duration of one run.
type Processor struct {
	client   *ollama.Client
	model    string
	language string
}

func New(client *ollama.Client, model, language string) *Processor {
	if language == "" {
		language = "English"
	}
	return &Processor{client: client, model: model, language: language}
}

// RecognizeFile reads the capture artifact and performs a single OCR
// call. Failures are not retried; the caller treats them as terminal.
func (p *Processor) RecognizeFile(ctx context.Context, path string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("ocr processor not initialized")
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read capture artifact: %w", err)
	}

	prompt := fmt.Sprintf("%s Output format: %s. Language: %s.", instruction, outputFormat, p.language)
	log.Printf("OCR request: model=%s artifact=%s (%d bytes)", p.model, path, len(image))

	text, err := p.client.Generate(ctx, p.model, prompt, image)
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}
	return text, nil
}
