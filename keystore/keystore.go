// Package keystore is a local-first, filesystem-backed store for text
// envelope files (keys, counters, certificates).
//
// Features:
// - Stores one envelope per file, named by the caller
// - Private directories (0700) and files (0600)
// - Refuses to overwrite unless asked
//
// This package is designed to be straightforward and explicit.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/praostools/praos/envelope"
)

// Store roots all envelope files under one directory.
type Store struct {
	Directory string
}

// DefaultDirectory is ~/.praos/keys.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".praos", "keys"), nil
}

// Open returns a store rooted at directory, defaulting to DefaultDirectory
// when directory is empty.
func Open(directory string) (*Store, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Directory: directory}, nil
}

// CheckName restricts file names to a safe character set.
func CheckName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' || char == '.' {
			continue
		}
		return fmt.Errorf("invalid character %q in name", char)
	}
	if strings.HasPrefix(name, ".") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

func (s *Store) filePath(name string) string {
	return filepath.Join(s.Directory, name)
}

// WriteEnvelope persists env under name and returns the file path. Existing
// files are only replaced when overwrite is set.
func (s *Store) WriteEnvelope(name string, env envelope.Envelope, overwrite bool) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	data, err := env.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Directory, 0o700); err != nil {
		return "", err
	}
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	path := s.filePath(name)
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := file.Write(data); err != nil {
		return "", err
	}
	return path, nil
}

// ReadEnvelope loads the envelope stored under name.
func (s *Store) ReadEnvelope(name string) (envelope.Envelope, error) {
	if err := CheckName(name); err != nil {
		return envelope.Envelope{}, err
	}
	data, err := os.ReadFile(s.filePath(name))
	if err != nil {
		return envelope.Envelope{}, err
	}
	return envelope.Parse(data)
}

// List returns the stored file names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
