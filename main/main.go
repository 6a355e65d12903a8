package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"text-meaning-llm/clipboard"
	"text-meaning-llm/config"
	"text-meaning-llm/dispatcher"
	"text-meaning-llm/eventloop"
	"text-meaning-llm/llm"
	"text-meaning-llm/logutil"
	"text-meaning-llm/notification"
	"text-meaning-llm/tray"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logutil.Setup(cfg.EnableFileLogging)

	// Validate configuration
	if cfg.APIKey == "" {
		notification.ShowBlockingError("設定エラー",
			"Gemini APIキーが設定されていません。.envファイルを確認してください。")
		os.Exit(1)
	}

	llm.Init(&llm.Config{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})

	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	log.Printf("Text meaning finder initialized")
	log.Printf("Using model: %s", cfg.Model)
	log.Printf("API key: %s", logutil.RedactKey(cfg.APIKey))
	log.Printf("Shortcut: %v+%q (meaning) / %v+%q (translate)",
		cfg.Modifiers, cfg.ShortcutKey, cfg.Modifiers, config.TranslateShortcutKey)

	loop := eventloop.New()

	disp, err := dispatcher.New(cfg.ShortcutKey, cfg.Modifiers, loop.Trigger)
	if err != nil {
		log.Fatalf("Failed to create dispatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan struct{})
	go func() {
		if err := loop.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Event loop stopped: %v", err)
		}
		close(loopDone)
	}()

	disp.Listen()

	shortcutHint := fmt.Sprintf("%v+%q", cfg.Modifiers, string(cfg.ShortcutKey))
	menuBar := tray.New("意味検索/翻訳",
		fmt.Sprintf("選択テキストの意味検索/翻訳 - %s", shortcutHint),
		tray.Callbacks{
			OnMeaning: func() {
				disp.SetMode(llm.ModeMeaning)
				loop.Trigger(llm.ModeMeaning)
			},
			OnTranslate: func() {
				disp.SetMode(llm.ModeTranslate)
				loop.Trigger(llm.ModeTranslate)
			},
			OnSetMode: func(mode llm.Mode) {
				disp.SetMode(mode)
				if mode == llm.ModeTranslate {
					notification.Notify("モード切替", "翻訳モードに切り替えました", false)
				} else {
					notification.Notify("モード切替", "意味解析モードに切り替えました", false)
				}
			},
			OnSettings: func() {
				_ = notification.ShowDialog("設定",
					"設定画面は現在開発中です。\n\n.envファイルを編集して設定を変更できます。")
			},
			OnQuit: func() {
				log.Printf("Shutting down")
				disp.Stop()
				cancel()
			},
		})

	// Handle SIGINT/SIGTERM
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		menuBar.Quit()
	}()

	// Blocks on the main thread until quit; macOS requires the menu-bar loop
	// to own the main thread.
	menuBar.Run()

	// Wait for in-flight actions to drain
	<-loopDone
}
