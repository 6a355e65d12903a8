// Package notification presents results and failures through the OS
// notification center and modal dialogs.
package notification

import (
	"log"
	"strings"
)

// Notify shows a fire-and-forget notification. Failures are logged and
// swallowed; callers never block on presentation.
func Notify(title, message string, sound bool) {
	if err := notify(title, message, sound); err != nil {
		log.Printf("Failed to show notification: %v", err)
	}
}

// ShowDialog displays a modal dialog with the full message. If the dialog
// cannot be rendered it falls back to a plain notification and reports the
// original error.
func ShowDialog(title, message string) error {
	if err := showDialog(title, message); err != nil {
		log.Printf("Failed to show dialog: %v", err)
		Notify("表示エラー", "結果の表示中にエラーが発生しました。", true)
		return err
	}
	return nil
}

// ShowBlockingError displays a modal error dialog and waits for dismissal.
// Used for fatal startup problems before the menu bar exists.
func ShowBlockingError(title, message string) {
	if err := showBlockingError(title, message); err != nil {
		log.Printf("Failed to show blocking error dialog: %v", err)
	}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
