//go:build darwin

package notification

import (
	"fmt"
	"os/exec"
)

func notify(title, message string, sound bool) error {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(message), appleScriptString(title))
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript notification failed: %w", err)
	}
	if sound {
		_ = exec.Command("osascript", "-e", "beep").Run()
	}
	return nil
}

func showDialog(title, message string) error {
	script := fmt.Sprintf(`display dialog %s with title %s buttons {"OK"} default button "OK" with icon note`,
		appleScriptString(message), appleScriptString(title))
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript dialog failed: %w", err)
	}
	return nil
}

func showBlockingError(title, message string) error {
	script := fmt.Sprintf(`display dialog %s with title %s buttons {"OK"} default button "OK" with icon stop`,
		appleScriptString(message), appleScriptString(title))
	return exec.Command("osascript", "-e", script).Run()
}
