package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultModel       = "gemini-1.5-pro"
	DefaultShortcutKey = ','
	// The translate trigger is fixed to period and not configurable.
	TranslateShortcutKey = '.'
)

// ModifierNames lists the modifier keys accepted in SHORTCUT_MODIFIER.
var ModifierNames = []string{"cmd", "shift", "ctrl", "alt"}

type Config struct {
	APIKey            string
	Model             string
	ShortcutKey       rune
	Modifiers         []string
	EnableFileLogging bool
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or executable directory
	envPaths := []string{".env"}

	// If running as executable, also try the executable's directory
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		envPaths = append(envPaths, filepath.Join(execDir, ".env"))
	}

	// Try to load .env file (ignore errors if file doesn't exist)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		APIKey:            os.Getenv("API_KEY"),
		Model:             getEnvWithDefault("MODEL_NAME", DefaultModel),
		ShortcutKey:       parseShortcutKey(os.Getenv("SHORTCUT_KEY")),
		Modifiers:         parseModifiers(getEnvWithDefault("SHORTCUT_MODIFIER", "cmd+shift")),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}

	return cfg, nil
}

// parseShortcutKey resolves the meaning-lookup trigger key. Only a single
// character is honored; anything longer keeps its first rune.
func parseShortcutKey(value string) rune {
	runes := []rune(strings.TrimSpace(value))
	if len(runes) == 0 {
		return DefaultShortcutKey
	}
	if len(runes) > 1 {
		log.Printf("SHORTCUT_KEY %q is longer than one character, using %q", value, string(runes[0]))
	}
	return runes[0]
}

// parseModifiers splits a "cmd+shift" style list into known modifier names.
// Unknown names are dropped rather than rejected; an empty result falls back
// to cmd+shift.
func parseModifiers(value string) []string {
	var mods []string
	for _, part := range strings.Split(strings.ToLower(value), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isKnownModifier(part) {
			log.Printf("Ignoring unknown modifier %q in SHORTCUT_MODIFIER", part)
			continue
		}
		mods = append(mods, part)
	}
	if len(mods) == 0 {
		return []string{"cmd", "shift"}
	}
	return mods
}

func isKnownModifier(name string) bool {
	for _, known := range ModifierNames {
		if name == known {
			return true
		}
	}
	return false
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
