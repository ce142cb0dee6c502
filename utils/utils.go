package utils

import (
	"fmt"
	"hash/fnv"
	"os"
	"time"
)

// GetEnv returns the value of an environment variable, or fallback when unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// CreateFolder creates a directory (and parents) if it does not already exist.
func CreateFolder(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", path, err)
		}
	}
	return nil
}

// GenerateUniqueID returns a small identifier suitable for tagging artifacts.
func GenerateUniqueID() uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d", time.Now().UnixNano())
	return h.Sum32()
}

// CreateOrReplaceSymlink points linkPath at target, replacing any previous
// link. An existing regular file at linkPath is removed as well, so the
// "latest" alias always resolves to the most recent artifact.
func CreateOrReplaceSymlink(target, linkPath string) error {
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.Remove(linkPath); err != nil {
			return fmt.Errorf("failed to remove previous link %s: %w", linkPath, err)
		}
	}
	return os.Symlink(target, linkPath)
}
