// Package dispatcher observes global key events and turns a configured
// modifier+key combination into a mode-tagged action trigger.
package dispatcher

import (
	"fmt"
	"log"
	"sort"
	"sync"

	gohook "github.com/robotn/gohook"

	"text-meaning-llm/config"
	"text-meaning-llm/llm"
)

// macOS virtual key codes as delivered in gohook's Rawcode field.
const (
	rawComma  = 43 // kVK_ANSI_Comma
	rawPeriod = 47 // kVK_ANSI_Period
)

// gohook reports Keychar as 0xFFFF when the event carries no character.
const charUndefined = 0xFFFF

// TriggerFunc receives the mode of a validated shortcut press.
type TriggerFunc func(mode llm.Mode)

type modifier struct {
	name     string
	rawcodes []uint16
}

// modifierRawcodes maps a modifier name to its left/right virtual key codes.
func modifierRawcodes(name string) []uint16 {
	switch name {
	case "cmd":
		return []uint16{54, 55} // kVK_Command, kVK_RightCommand
	case "shift":
		return []uint16{56, 60} // kVK_Shift, kVK_RightShift
	case "ctrl":
		return []uint16{59, 62} // kVK_Control, kVK_RightControl
	case "alt":
		return []uint16{58, 61} // kVK_Option, kVK_RightOption
	default:
		return nil
	}
}

// Dispatcher owns the mode state machine and the held-modifiers set. All
// access to both goes through its methods under a single lock; events arrive
// from the listener goroutine while the menu mutates mode from the UI side.
type Dispatcher struct {
	mu       sync.Mutex
	mode     llm.Mode
	required []modifier
	held     map[string]bool

	meaningKey rune
	trigger    TriggerFunc
	stopped    bool
}

// New builds a dispatcher for the given meaning-lookup trigger key and
// required modifier names. The translate trigger is fixed to period.
func New(meaningKey rune, modifierNames []string, trigger TriggerFunc) (*Dispatcher, error) {
	var required []modifier
	for _, name := range modifierNames {
		rawcodes := modifierRawcodes(name)
		if rawcodes == nil {
			return nil, fmt.Errorf("unknown modifier %q", name)
		}
		required = append(required, modifier{name: name, rawcodes: rawcodes})
	}
	if len(required) == 0 {
		return nil, fmt.Errorf("at least one modifier is required")
	}

	return &Dispatcher{
		mode:       llm.ModeMeaning,
		required:   required,
		held:       make(map[string]bool),
		meaningKey: meaningKey,
		trigger:    trigger,
	}, nil
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() llm.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SetMode switches the mode, as from an explicit menu selection.
func (d *Dispatcher) SetMode(mode llm.Mode) {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
	log.Printf("Mode switched to %s", mode)
}

// HeldModifiers returns the names of the tracked modifiers currently down,
// sorted for stable comparison.
func (d *Dispatcher) HeldModifiers() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.held))
	for name := range d.held {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyDown processes a global key press. If the key is a tracked modifier it
// joins the held set; independently, if the held set covers every required
// modifier and the key matches a trigger, the mode is set and the trigger
// fires. OS auto-repeat delivers repeated KeyDown events and each one fires
// again; there is no repeat suppression.
func (d *Dispatcher) KeyDown(rawcode uint16, keychar rune) {
	if isSentinel(rawcode) {
		return
	}

	d.mu.Lock()
	if name := d.modifierName(rawcode); name != "" {
		d.held[name] = true
		log.Printf("%s pressed, held modifiers: %v", name, d.heldNamesLocked())
	}

	isMeaning, isTranslate := d.classifyTrigger(rawcode, keychar)

	fire := (isMeaning || isTranslate) && d.allRequiredHeldLocked()
	var mode llm.Mode
	if fire {
		if isTranslate {
			mode = llm.ModeTranslate
		} else {
			mode = llm.ModeMeaning
		}
		d.mode = mode
	}
	trigger := d.trigger
	d.mu.Unlock()

	if fire {
		log.Printf("Shortcut detected, mode=%s", mode)
		if trigger != nil {
			trigger(mode)
		}
	}
}

// KeyUp processes a global key release, removing the key from the held set if
// it is tracked.
func (d *Dispatcher) KeyUp(rawcode uint16) {
	if isSentinel(rawcode) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if name := d.modifierName(rawcode); name != "" && d.held[name] {
		delete(d.held, name)
		log.Printf("%s released, held modifiers: %v", name, d.heldNamesLocked())
	}
}

// classifyTrigger matches the pressed key against the two trigger keys by
// character, falling back to the raw comma/period key codes when the event
// carries no character. Some input layouts deliver these keys without a
// character form, so both paths are kept.
func (d *Dispatcher) classifyTrigger(rawcode uint16, keychar rune) (isMeaning, isTranslate bool) {
	if keychar != 0 && keychar != charUndefined {
		return keychar == d.meaningKey, keychar == config.TranslateShortcutKey
	}
	return rawcode == rawComma, rawcode == rawPeriod
}

func (d *Dispatcher) modifierName(rawcode uint16) string {
	for _, m := range d.required {
		for _, rc := range m.rawcodes {
			if rc == rawcode {
				return m.name
			}
		}
	}
	return ""
}

func (d *Dispatcher) allRequiredHeldLocked() bool {
	for _, m := range d.required {
		if !d.held[m.name] {
			return false
		}
	}
	return true
}

func (d *Dispatcher) heldNamesLocked() []string {
	names := make([]string, 0, len(d.held))
	for name := range d.held {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isSentinel reports padding events some input sources emit with zero or
// all-ones key codes; tracking them would leave ghost modifiers held.
func isSentinel(rawcode uint16) bool {
	return rawcode == 0 || rawcode == 255
}

// Listen starts the global key event listener on its own goroutine. The
// listener survives any failure while classifying or dispatching an event.
func (d *Dispatcher) Listen() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		log.Printf("Starting gohook event loop...")
		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}

		for ev := range evChan {
			d.handleEvent(ev)
		}
		log.Printf("Event channel closed")
	}()
}

// Stop terminates the global event hook, draining the listener goroutine.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()
	gohook.End()
}

func (d *Dispatcher) handleEvent(ev gohook.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Key event handling panicked: %v", r)
		}
	}()

	switch ev.Kind {
	case gohook.KeyDown:
		d.KeyDown(ev.Rawcode, ev.Keychar)
	case gohook.KeyUp:
		d.KeyUp(ev.Rawcode)
	}
}
