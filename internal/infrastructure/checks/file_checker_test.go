package checks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/afevis/modcheck/internal/infrastructure/checks"
)

// SHA-1 of the ASCII bytes "hello".
const helloSHA1 = "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"

func TestCheckerExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.ctxr")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	checker := checks.New()
	if !checker.Exists(path) {
		t.Error("Exists = false for a regular file")
	}
	if checker.Exists(filepath.Join(dir, "missing.ctxr")) {
		t.Error("Exists = true for a missing file")
	}
	if checker.Exists(dir) {
		t.Error("Exists = true for a directory")
	}
}

func TestCheckerMatchesDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.ctxr")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	checker := checks.New()

	tests := []struct {
		name   string
		path   string
		digest string
		want   bool
	}{
		{name: "matching digest", path: path, digest: helloSHA1, want: true},
		{name: "uppercase digest matches", path: path, digest: "AAF4C61DDCC5E8A2DABEDE0F3B482CD9AEA9434D", want: true},
		{name: "wrong digest", path: path, digest: "0000000000000000000000000000000000000000", want: false},
		{name: "missing file never matches", path: filepath.Join(dir, "missing.ctxr"), digest: helloSHA1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.MatchesDigest(tt.path, tt.digest); got != tt.want {
				t.Errorf("MatchesDigest = %v, want %v", got, tt.want)
			}
		})
	}
}
