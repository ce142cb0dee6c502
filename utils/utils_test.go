package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("UTILS_TEST_KEY", "set")
	if got := GetEnv("UTILS_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := GetEnv("UTILS_TEST_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestCreateFolderIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := CreateFolder(dir); err != nil {
		t.Fatalf("CreateFolder returned error: %v", err)
	}
	if err := CreateFolder(dir); err != nil {
		t.Fatalf("CreateFolder on existing dir returned error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", dir)
	}
}

func TestCreateOrReplaceSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	link := filepath.Join(dir, "latest.txt")

	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := CreateOrReplaceSymlink(first, link); err != nil {
		t.Fatalf("CreateOrReplaceSymlink returned error: %v", err)
	}
	if err := CreateOrReplaceSymlink(second, link); err != nil {
		t.Fatalf("replacing existing link returned error: %v", err)
	}

	content, err := os.ReadFile(link)
	if err != nil {
		t.Fatalf("failed to read through link: %v", err)
	}
	if string(content) != "second.txt" {
		t.Fatalf("link should resolve the replacement target, got %q", content)
	}
}
