// One-shot lookup tool: queries the model for text given on the command line
// or stdin, without the menu bar or hotkey listener.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"text-meaning-llm/config"
	"text-meaning-llm/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	modeFlag := flag.String("mode", "meaning", "Query mode: meaning or translate")
	verbose := flag.Bool("v", false, "Verbose output to stderr")
	flag.Parse()

	mode, err := parseMode(*modeFlag)
	if err != nil {
		return err
	}

	text, err := readInput(flag.Args())
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no input text\nUsage: lookup-cli [-mode meaning|translate] <text> (or pipe text on stdin)")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API_KEY is required in .env file or environment")
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "[verbose] Model=%s Mode=%s\n", cfg.Model, mode)
	}

	llm.Init(&llm.Config{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})

	result, err := llm.Query(llm.BuildPrompt(mode, text))
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}

func parseMode(value string) (llm.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "meaning":
		return llm.ModeMeaning, nil
	case "translate":
		return llm.ModeTranslate, nil
	default:
		return llm.ModeMeaning, fmt.Errorf("unknown mode %q (want meaning or translate)", value)
	}
}

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
