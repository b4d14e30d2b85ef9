package indexer

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Algorithm is a selectable content hash function.
type Algorithm struct {
	Name string
	New  func() hash.Hash
}

// LookupAlgorithm resolves an algorithm by name. sha256 is the default used
// when no configuration says otherwise.
func LookupAlgorithm(name string) (*Algorithm, error) {
	switch strings.ToLower(name) {
	case "sha1":
		return &Algorithm{Name: "sha1", New: sha1.New}, nil
	case "sha256":
		return &Algorithm{Name: "sha256", New: sha256.New}, nil
	case "sha512":
		return &Algorithm{Name: "sha512", New: sha512.New}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
}

// HashReader streams r through the algorithm's digest and returns the
// lowercase hex signature. Memory use is bounded regardless of stream size.
func HashReader(r io.Reader, algo *Algorithm) (string, error) {
	h := algo.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to hash stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile computes the content signature of the file at path.
func HashFile(path string, algo *Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sig, err := HashReader(f, algo)
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return sig, nil
}
