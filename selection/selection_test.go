package selection

import (
	"errors"
	"testing"
)

func newTestCapturer(clip string, chordErr error) *Capturer {
	return &Capturer{
		sendCopy: func() error { return chordErr },
		read:     func() string { return clip },
		delay:    0,
	}
}

func TestCaptureTrimsSelection(t *testing.T) {
	c := newTestCapturer("  hello world \n", nil)
	text, err := c.Capture()
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("Expected trimmed 'hello world', got %q", text)
	}
}

func TestCaptureEmptyClipboard(t *testing.T) {
	c := newTestCapturer("", nil)
	_, err := c.Capture()
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection, got %v", err)
	}
}

func TestCaptureWhitespaceOnly(t *testing.T) {
	c := newTestCapturer(" \t\n ", nil)
	_, err := c.Capture()
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expected ErrNoSelection for whitespace-only clipboard, got %v", err)
	}
}

func TestCaptureChordFailure(t *testing.T) {
	chordErr := errors.New("injection refused")
	c := newTestCapturer("ignored", chordErr)
	_, err := c.Capture()
	if err == nil {
		t.Fatal("Expected error when the copy chord fails")
	}
	if !errors.Is(err, chordErr) {
		t.Errorf("Expected wrapped chord error, got %v", err)
	}
	if errors.Is(err, ErrNoSelection) {
		t.Errorf("Chord failure must be distinct from ErrNoSelection")
	}
}
