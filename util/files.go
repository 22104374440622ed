package util

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// HashFile returns the hex SHA-256 digest of a file's contents.
func HashFile(fileName string) (string, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
