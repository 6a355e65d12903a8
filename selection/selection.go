// Package selection captures the text currently selected anywhere in the OS
// by synthesizing a copy key-chord and reading back the clipboard.
package selection

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/micmonay/keybd_event"

	"text-meaning-llm/clipboard"
)

// ErrNoSelection reports that the clipboard held no text after the copy
// chord. Callers should treat it as "nothing to do", not a failure.
var ErrNoSelection = errors.New("no text selected")

// The clipboard updates asynchronously after the synthesized chord.
const settleDelay = 100 * time.Millisecond

// Capturer grabs the current selection. The chord and clipboard accessors are
// swappable so tests can run without touching the real input layer.
type Capturer struct {
	sendCopy func() error
	read     func() string
	delay    time.Duration
}

func NewCapturer() *Capturer {
	return &Capturer{
		sendCopy: sendCopyChord,
		read:     clipboard.Read,
		delay:    settleDelay,
	}
}

// Capture synthesizes the copy chord, waits for the clipboard to settle and
// returns the trimmed selection text.
func (c *Capturer) Capture() (string, error) {
	if err := c.sendCopy(); err != nil {
		return "", fmt.Errorf("copy key-chord failed: %w", err)
	}

	time.Sleep(c.delay)

	text := strings.TrimSpace(c.read())
	if text == "" {
		return "", ErrNoSelection
	}

	log.Printf("Captured selection (%d chars)", len(text))
	return text, nil
}

// sendCopyChord injects Cmd+C (Ctrl+C outside macOS) into the OS input layer.
func sendCopyChord() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.SetKeys(keybd_event.VK_C)
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	return kb.Launching()
}
