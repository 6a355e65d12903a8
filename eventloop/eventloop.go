// Package eventloop coordinates triggered actions: capture the selection,
// query the model, present the result. Every failure is converted to a user
// notification at this boundary; nothing propagates back to the listener.
package eventloop

import (
	"context"
	"errors"
	"fmt"
	"log"

	"text-meaning-llm/llm"
	"text-meaning-llm/notification"
	"text-meaning-llm/selection"
	"text-meaning-llm/worker"
)

// Presenter shows results and failures to the user.
type Presenter interface {
	Notify(title, message string, sound bool)
	ShowDialog(title, message string) error
}

// osPresenter routes presentation through the notification package.
type osPresenter struct{}

func (osPresenter) Notify(title, message string, sound bool) {
	notification.Notify(title, message, sound)
}

func (osPresenter) ShowDialog(title, message string) error {
	return notification.ShowDialog(title, message)
}

// Loop consumes mode-tagged triggers and runs each action on the worker pool.
type Loop struct {
	pool     *worker.Pool
	capture  func() (string, error)
	query    func(mode llm.Mode, text string) (string, error)
	present  Presenter
	triggers chan llm.Mode
}

func New() *Loop {
	capturer := selection.NewCapturer()
	return &Loop{
		pool:    worker.New(0),
		capture: capturer.Capture,
		query: func(mode llm.Mode, text string) (string, error) {
			return llm.Query(llm.BuildPrompt(mode, text))
		},
		present:  osPresenter{},
		triggers: make(chan llm.Mode, 4),
	}
}

// Trigger posts a mode-tagged action. It never blocks; when the buffer is
// full the press is dropped, which only happens under trigger spam.
func (l *Loop) Trigger(mode llm.Mode) {
	select {
	case l.triggers <- mode:
	default:
		log.Printf("Trigger queue full, dropping %s action", mode)
	}
}

// Run processes triggers until ctx is cancelled, then drains in-flight work.
func (l *Loop) Run(ctx context.Context) error {
	defer l.pool.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case mode := <-l.triggers:
			l.dispatch(ctx, mode)
		}
	}
}

func (l *Loop) dispatch(ctx context.Context, mode llm.Mode) {
	submitted := l.pool.Submit(ctx, func(ctx context.Context) {
		l.runAction(ctx, mode)
	})
	if !submitted {
		log.Printf("Worker queue full, dropping %s action", mode)
		l.present.Notify("エラー", "処理が混み合っています。少し待ってから再試行してください", false)
	}
}

// runAction performs one capture → query → present sequence.
func (l *Loop) runAction(ctx context.Context, mode llm.Mode) {
	log.Printf("Processing %s action", mode)

	text, err := l.capture()
	if err != nil {
		if errors.Is(err, selection.ErrNoSelection) {
			log.Printf("No text selected")
			l.present.Notify("テキスト未選択",
				"テキストを選択してからショートカットキーを押してください", true)
			return
		}
		log.Printf("Selection capture failed: %v", err)
		l.present.Notify("エラー", "テキストの処理中にエラーが発生しました", true)
		return
	}

	if ctx.Err() != nil {
		log.Printf("Skipping %s action, shutting down", mode)
		return
	}

	result, err := l.query(mode, text)
	if err != nil {
		log.Printf("LLM query failed: %v", err)
		l.present.Notify("エラー", fmt.Sprintf("処理中にエラーが発生しました: %v", err), true)
		return
	}

	if err := l.present.ShowDialog(llm.ResultTitle(mode), result); err != nil {
		// ShowDialog already fell back to a notification
		log.Printf("Result dialog failed: %v", err)
	}
}
