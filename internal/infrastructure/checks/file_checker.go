// Package checks probes the inspected game files by existence and content
// digest. Absence of a file is meaningful input for the caller, not an error.
package checks

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/afevis/modcheck/internal/ports"
)

// Checker implements ports.FileFingerprintChecker against the local
// filesystem. The known-hash database is SHA-1, so the digest choice is
// fixed by the data being compared against.
type Checker struct{}

// New builds the filesystem checker.
func New() *Checker {
	return &Checker{}
}

// Exists reports whether path names a regular file.
func (Checker) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// MatchesDigest reports whether the file's SHA-1 equals expectedHex.
// A missing or unreadable file simply does not match.
func (Checker) MatchesDigest(path, expectedHex string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return false
	}
	return strings.EqualFold(hex.EncodeToString(h.Sum(nil)), expectedHex)
}

var _ ports.FileFingerprintChecker = (*Checker)(nil)
