package eventloop

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"text-meaning-llm/llm"
	"text-meaning-llm/selection"
	"text-meaning-llm/worker"
)

type fakePresenter struct {
	mu            sync.Mutex
	notifications []string
	dialogs       []string
	dialogErr     error
}

func (p *fakePresenter) Notify(title, message string, sound bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, title+": "+message)
}

func (p *fakePresenter) ShowDialog(title, message string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dialogErr != nil {
		return p.dialogErr
	}
	p.dialogs = append(p.dialogs, title+": "+message)
	return nil
}

func (p *fakePresenter) snapshot() (notifications, dialogs []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notifications...), append([]string(nil), p.dialogs...)
}

func newTestLoop(capture func() (string, error), query func(llm.Mode, string) (string, error)) (*Loop, *fakePresenter) {
	p := &fakePresenter{}
	return &Loop{
		pool:     worker.New(1),
		capture:  capture,
		query:    query,
		present:  p,
		triggers: make(chan llm.Mode, 4),
	}, p
}

func TestRunActionSuccess(t *testing.T) {
	l, p := newTestLoop(
		func() (string, error) { return "hello", nil },
		func(mode llm.Mode, text string) (string, error) {
			if text != "hello" {
				t.Errorf("Expected captured text 'hello', got %q", text)
			}
			return "挨拶の言葉です", nil
		},
	)
	defer l.pool.Close()

	l.runAction(context.Background(), llm.ModeMeaning)

	notifications, dialogs := p.snapshot()
	if len(notifications) != 0 {
		t.Errorf("Expected no notifications on success, got %v", notifications)
	}
	if len(dialogs) != 1 || !strings.HasPrefix(dialogs[0], "テキストの要約: ") {
		t.Errorf("Expected one meaning result dialog, got %v", dialogs)
	}
}

func TestRunActionTranslateTitle(t *testing.T) {
	l, p := newTestLoop(
		func() (string, error) { return "hello", nil },
		func(llm.Mode, string) (string, error) { return "こんにちは", nil },
	)
	defer l.pool.Close()

	l.runAction(context.Background(), llm.ModeTranslate)

	_, dialogs := p.snapshot()
	if len(dialogs) != 1 || !strings.HasPrefix(dialogs[0], "翻訳結果と類似表現: ") {
		t.Errorf("Expected translate result dialog, got %v", dialogs)
	}
}

func TestRunActionNoSelectionAbortsBeforeQuery(t *testing.T) {
	queried := false
	l, p := newTestLoop(
		func() (string, error) { return "", selection.ErrNoSelection },
		func(llm.Mode, string) (string, error) {
			queried = true
			return "", nil
		},
	)
	defer l.pool.Close()

	l.runAction(context.Background(), llm.ModeMeaning)

	if queried {
		t.Error("Query must not run when nothing was selected")
	}
	notifications, dialogs := p.snapshot()
	if len(notifications) != 1 || !strings.Contains(notifications[0], "テキスト未選択") {
		t.Errorf("Expected one no-selection notification, got %v", notifications)
	}
	if len(dialogs) != 0 {
		t.Errorf("Expected no dialog, got %v", dialogs)
	}
}

func TestRunActionQueryErrorNotifiesOnce(t *testing.T) {
	l, p := newTestLoop(
		func() (string, error) { return "hello", nil },
		func(llm.Mode, string) (string, error) {
			return "", errors.New("connection refused")
		},
	)
	defer l.pool.Close()

	l.runAction(context.Background(), llm.ModeMeaning)

	notifications, dialogs := p.snapshot()
	if len(notifications) != 1 {
		t.Fatalf("Expected exactly one error notification, got %v", notifications)
	}
	if !strings.Contains(notifications[0], "connection refused") {
		t.Errorf("Notification must carry the underlying message, got %q", notifications[0])
	}
	if len(dialogs) != 0 {
		t.Errorf("Expected no dialog on inference failure, got %v", dialogs)
	}
}

func TestRunActionCaptureFailure(t *testing.T) {
	l, p := newTestLoop(
		func() (string, error) { return "", errors.New("injection refused") },
		func(llm.Mode, string) (string, error) {
			t.Error("Query must not run when capture fails")
			return "", nil
		},
	)
	defer l.pool.Close()

	l.runAction(context.Background(), llm.ModeMeaning)

	notifications, _ := p.snapshot()
	if len(notifications) != 1 || !strings.Contains(notifications[0], "エラー") {
		t.Errorf("Expected one capture error notification, got %v", notifications)
	}
}

func TestRunProcessesTriggers(t *testing.T) {
	got := make(chan llm.Mode, 1)
	l, _ := newTestLoop(
		func() (string, error) { return "hello", nil },
		func(mode llm.Mode, text string) (string, error) {
			got <- mode
			return "ok", nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	l.Trigger(llm.ModeTranslate)

	select {
	case mode := <-got:
		if mode != llm.ModeTranslate {
			t.Errorf("Expected translate mode, got %v", mode)
		}
	case <-time.After(time.Second):
		t.Fatal("Trigger was not processed")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
