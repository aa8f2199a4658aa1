// Package appdir provides constants and utilities for the .tdl state directory.
package appdir

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Dir is the name of the tdl state directory inside the home directory.
	Dir = ".tdl"

	// UsersKey is the dataset holding all registered users.
	UsersKey = "users.json"

	// SessionKey is the dataset holding the current session identity.
	SessionKey = "session.json"

	// PrefsKey is the dataset holding display preferences.
	PrefsKey = "prefs.json"

	// DefaultConfigFile is the default config file name (inside the state dir).
	DefaultConfigFile = "tdl.toml"

	// LocalOwner is the implicit owner used when no session is active.
	LocalOwner = "local"
)

// Default returns the default state directory, ~/.tdl.
func Default() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// ConfigPath returns the path of the user config file within a state directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, DefaultConfigFile)
}

// TasksKey returns the dataset name for an owner's task collection.
func TasksKey(ownerKey string) string {
	return filepath.Join("tasks", ownerKey+".json")
}

// OwnerKey derives a filesystem-safe dataset key from an owner email.
// An empty email maps to the implicit local owner. Email addresses are
// slugified and suffixed with a short hash so distinct addresses that
// slugify identically still get distinct datasets.
func OwnerKey(email string) string {
	if email == "" {
		return LocalOwner
	}
	return fmt.Sprintf("%s-%s", slugify(email), hashKey(email))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "owner"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "owner"
	}
	return slug
}

func hashKey(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}
