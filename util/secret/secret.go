// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package secret reads credentials, such as the database connection string,
// either directly from an environment variable or from a file named by
// the variable with a "_FILE" suffix (docker/podman secrets).
package secret

import (
	"fmt"
	"os"
	"strings"
)

type MissingEnvironmentKey string

func (k MissingEnvironmentKey) Error() string {
	return fmt.Sprintf("%s environment variable not set", string(k))
}

// Source resolves secrets. The zero value reads the process environment.
type Source struct {
	Getenv   func(string) string
	ReadFile func(string) ([]byte, error)
}

func (s Source) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func (s Source) readFile(path string) ([]byte, error) {
	if s.ReadFile != nil {
		return s.ReadFile(path)
	}
	return os.ReadFile(path)
}

// Lookup returns the secret under key, or ok=false if neither key nor key_FILE is set.
func (s Source) Lookup(key string) (value string, ok bool, err error) {
	value = s.getenv(key)
	if value == "" {
		if path := s.getenv(key + "_FILE"); path != "" {
			content, err := s.readFile(path)
			if err != nil {
				return "", false, fmt.Errorf("%s_FILE: %w", key, err)
			}
			value = string(content)
		}
	}

	value = strings.TrimSpace(value)
	return value, value != "", nil
}

// Get is like Lookup, but a missing secret is a MissingEnvironmentKey error.
func (s Source) Get(key string) (string, error) {
	value, ok, err := s.Lookup(key)
	if err != nil {
		return "", err
	} else if !ok {
		return "", MissingEnvironmentKey(key)
	}
	return value, nil
}

func FromEnvironment(key string) (string, error) {
	return Source{}.Get(key)
}
