// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

// Package file2 writes output files so that readers never see them half-written.
package file2

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Replace writes a temporary file next to path and renames it over path.
// On failure the temporary file is removed and path is left untouched.
func Replace(path string, write func(io.Writer) error) (err error) {
	tempPath := TempPath(path)

	f, err := os.Create(tempPath)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tempPath)
		}
	}()

	b := bufio.NewWriter(f)
	err = write(b)
	if err == nil {
		err = b.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// TempPath returns the hidden temporary file used by Replace.
func TempPath(path string) string {
	dir, name := filepath.Split(path)
	return fmt.Sprintf("%s.%s.tmp", dir, name)
}
