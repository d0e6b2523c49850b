// Package validation checks configuration values before they reach the
// store or the passage client.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum allowed path length.
const MaxPathLength = 4096

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrNotDatabase      = errors.New("not an SQLite database")
	ErrNoDatabase       = errors.New("database does not exist")
	ErrInvalidURL       = errors.New("invalid URL")
)

var sqliteMagic = []byte("SQLite format 3\x00")

// ValidatePath checks for length limits and invalid characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateDatabasePath checks that path names an existing SQLite database.
// Missing and empty files are rejected: they hold no calendar.
func ValidateDatabasePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNoDatabase, path)
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotDatabase, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s is empty", ErrNotDatabase, path)
	}
	return checkSQLiteHeader(f, path)
}

func checkSQLiteHeader(r io.Reader, name string) error {
	buf := make([]byte, len(sqliteMagic))
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	if !bytes.Equal(buf[:n], sqliteMagic) {
		return fmt.Errorf("%w: %s", ErrNotDatabase, name)
	}
	return nil
}

// ValidateServiceURL checks that raw is an absolute http or https URL with a
// host.
func ValidateServiceURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
