package fixture

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash hashes a file and returns the hash as a hex string suitable for
// use in a manifest line. Symlinks are followed, so hashing a dangling link
// fails the same way hashing a missing file does.
func FileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return Hash(file)
}

// Hash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func Hash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
