//go:build !darwin

package notification

import (
	"fmt"
	"log"
	"os"
)

func notify(title, message string, sound bool) error {
	log.Printf("Notification: %s - %s (sound=%v)", title, message, sound)
	return nil
}

func showDialog(title, message string) error {
	log.Printf("Dialog: %s - %s", title, message)
	return nil
}

func showBlockingError(title, message string) error {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
	return nil
}
